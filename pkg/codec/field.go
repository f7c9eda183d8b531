package codec

// PadKind selects how a value is fitted into its field when it is shorter
// than the field's width.
type PadKind int

const (
	// PadNone writes the value as-is, left-aligned; bytes past the value
	// keep whatever the buffer already held.
	PadNone PadKind = iota
	// PadNumeric right-justifies and fills the left side with '0'.
	PadNumeric
	// PadAlphameric left-justifies and fills the right side with ' '.
	PadAlphameric
	// PadRouting right-justifies and fills the left side with ' '. The
	// format zero-fills every other numeric field, but a routing number
	// padded with zeros would read as a different identifier, so these
	// stay space-filled.
	PadRouting
)

// FieldDescriptor describes one named field inside a fixed-width record:
// its byte range and the padding applied on writes.
type FieldDescriptor struct {
	Name  string // display label, informational only
	Start int    // byte offset, inclusive
	End   int    // byte offset, exclusive
	Pad   PadKind
}

// NewField builds a descriptor from the format's column numbers, which are
// 1-based and inclusive on both ends.
func NewField(name string, start, end int, pad PadKind) FieldDescriptor {
	return FieldDescriptor{
		Name:  name,
		Start: start - 1,
		End:   end,
		Pad:   pad,
	}
}

// Width returns the field's size in bytes.
func (f FieldDescriptor) Width() int {
	return f.End - f.Start
}
