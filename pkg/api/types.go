package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string

	// Defaults applied when a request leaves the corresponding field empty.
	FileDefaults  FileDefaults
	BatchDefaults BatchDefaults
}

// FileDefaults are the file header values drawn from configuration.
type FileDefaults struct {
	IDModifier      string
	Destination     string
	DestinationName string
	Origin          string
	OriginName      string
	ReferenceCode   string
	BlockingFactor  int
}

// BatchDefaults are the originating company values drawn from configuration.
type BatchDefaults struct {
	CompanyName string
	CompanyID   string
	ODFIID      string
}

// CreateFileRequest opens a new draft file. Empty fields fall back to the
// server's configured defaults.
type CreateFileRequest struct {
	IDModifier      string `json:"id_modifier,omitempty"`
	Destination     string `json:"destination,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
	Origin          string `json:"origin,omitempty"`
	OriginName      string `json:"origin_name,omitempty"`
	ReferenceCode   string `json:"reference_code,omitempty"`
	BlockingFactor  int    `json:"blocking_factor,omitempty"`
}

// CreateBatchRequest adds a batch to a draft file. EffectiveDate is
// "YYYY-MM-DD"; it defaults to today and rolls forward off weekends.
type CreateBatchRequest struct {
	ServiceCode   string `json:"service_code,omitempty"`
	ClassCode     string `json:"class_code,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	Description   string `json:"description"`
	CompanyID     string `json:"company_id,omitempty"`
	ODFIID        string `json:"odfi_id,omitempty"`
	EffectiveDate string `json:"effective_date,omitempty"`
}

// AddEntryRequest adds one entry detail record to a batch. Amount is in
// cents. TransactionCode defaults to a checking credit.
type AddEntryRequest struct {
	TransactionCode string `json:"transaction_code,omitempty"`
	RDFIID          string `json:"rdfi_id"`
	AccountNumber   string `json:"account_number"`
	Amount          int64  `json:"amount"`
	ID              string `json:"id"`
	Name            string `json:"name"`
}

// FileStatus describes a draft or finalized file session.
type FileStatus struct {
	ID         string `json:"id"`
	Finalized  bool   `json:"finalized"`
	BatchCount int    `json:"batch_count"`
	EntryCount int    `json:"entry_count"`
}

// BatchStatus describes one batch inside a file session.
type BatchStatus struct {
	FileID     string `json:"file_id"`
	Batch      int    `json:"batch"` // 1-based position
	EntryCount int    `json:"entry_count"`
}

// FinalizeResult reports the control totals after finalization.
type FinalizeResult struct {
	ID           string `json:"id"`
	BatchCount   int64  `json:"batch_count"`
	EntryCount   int64  `json:"entry_count"`
	DebitAmount  int64  `json:"debit_amount"`
	CreditAmount int64  `json:"credit_amount"`
	BlockCount   int64  `json:"block_count"`
	ArchiveID    string `json:"archive_id,omitempty"`
}
