/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/finforge/nacha/cmd/nacha/cmd"

func main() {
	cmd.Execute()
}
