package ach

// Service class codes. A batch carries exactly one, and it gates which
// control totals accumulate the batch's entry amounts.
const (
	ServiceMixed       = "200"
	ServiceCreditsOnly = "220"
	ServiceDebitsOnly  = "225"
	ServiceAdvices     = "280"
)

// Transaction codes. Only credit codes are defined; the builder does not
// originate debits.
const (
	TransCheckingCredit = "22"
	TransSavingsCredit  = "32"
)

// EntryClassPPD is the standard entry class for consumer payments.
const EntryClassPPD = "PPD"

// Company identification type markers.
const (
	CompanyIDTypeEIN  = "1"
	CompanyIDTypeDUNS = "3"
)

// eol joins record lines. The interchange format requires CRLF.
const eol = "\r\n"

// entryHashModulus truncates entry hashes to their rightmost 10 digits so
// they fit the control records' 10-digit hash field regardless of how many
// routing numbers were summed.
const entryHashModulus = 10_000_000_000

// Errors
var (
	ErrBatchFinalized = &BuildError{"entries cannot be added after the batch has been finalized"}
	ErrFileFinalized  = &BuildError{"batches cannot be added after the file is finalized"}
	ErrNotFinalized   = &BuildError{"the file cannot be rendered until it is finalized"}
)

// BuildError represents a file construction error
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return e.Message
}
