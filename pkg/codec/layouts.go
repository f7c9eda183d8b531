package codec

import "time"

// The five record layouts. Column numbers follow the published format
// specification (1-based, inclusive). Fields the format defines but this
// builder never writes (reserved ranges, settlement date, originator status)
// are still declared so callers can address them.

// NewFileHeader returns a file header record ("1") with its structural
// defaults set: priority code, creation date and time taken from now, the
// fixed record size "094", blocking factor "10", and format code "1".
func NewFileHeader(now time.Time) *Record {
	r := newRecord(KindFileHeader, map[string]FieldDescriptor{
		"recordType":      NewField("Record Type", 1, 1, PadNone),
		"priorityCode":    NewField("Priority Code", 2, 3, PadNumeric),
		"destination":     NewField("Immediate Destination", 4, 13, PadRouting),
		"origin":          NewField("Immediate Origin", 14, 23, PadRouting),
		"creationDate":    NewField("File Creation Date", 24, 29, PadNone),
		"creationTime":    NewField("File Creation Time", 30, 33, PadNone),
		"fileIdModifier":  NewField("File ID Modifier", 34, 34, PadNone),
		"recordSize":      NewField("Record Size", 35, 37, PadNone),
		"blockingFactor":  NewField("Blocking Factor", 38, 39, PadNone),
		"formatCode":      NewField("Format Code", 40, 40, PadNone),
		"destinationName": NewField("Immediate Destination Name", 41, 63, PadAlphameric),
		"originName":      NewField("Immediate Origin Name", 64, 86, PadAlphameric),
		"refCode":         NewField("Reference Code", 87, 94, PadAlphameric),
	})

	mustSet(r, "recordType", "1")
	mustSet(r, "priorityCode", "01")
	mustSet(r, "creationDate", now.Format("060102"))
	mustSet(r, "creationTime", now.Format("1504"))
	mustSet(r, "recordSize", "094")
	mustSet(r, "blockingFactor", "10")
	mustSet(r, "formatCode", "1")
	return r
}

// NewFileControl returns a file control record ("9"). The totals stay zero
// until the owning file finalizes.
func NewFileControl() *Record {
	r := newRecord(KindFileControl, map[string]FieldDescriptor{
		"recordType":   NewField("Record Type", 1, 1, PadNone),
		"batchCount":   NewField("Batch Count", 2, 7, PadNumeric),
		"blockCount":   NewField("Block Count", 8, 13, PadNumeric),
		"entryCount":   NewField("Entry Count", 14, 21, PadNumeric),
		"entryHash":    NewField("Entry Hash", 22, 31, PadNumeric),
		"debitAmount":  NewField("Total Debit Amount", 32, 43, PadNumeric),
		"creditAmount": NewField("Total Credit Amount", 44, 55, PadNumeric),
		"reserved":     NewField("Reserved", 56, 94, PadNone),
	})

	mustSet(r, "recordType", "9")
	return r
}

// NewBatchHeader returns a batch header record ("5").
func NewBatchHeader() *Record {
	r := newRecord(KindBatchHeader, map[string]FieldDescriptor{
		"recordType":       NewField("Record Type", 1, 1, PadNone),
		"serviceCode":      NewField("Service Class Code", 2, 4, PadNumeric),
		"companyName":      NewField("Company Name", 5, 20, PadAlphameric),
		"companyData":      NewField("Company Discretionary Data", 21, 40, PadAlphameric),
		"companyId":        NewField("Company Identification", 41, 50, PadAlphameric),
		"entryClassCode":   NewField("Standard Entry Class Code", 51, 53, PadAlphameric),
		"entryDescription": NewField("Company Entry Description", 54, 63, PadAlphameric),
		"descriptiveDate":  NewField("Company Descriptive Date", 64, 69, PadAlphameric),
		"entryDate":        NewField("Effective Entry Date", 70, 75, PadNone),
		"settlementDate":   NewField("Settlement Date", 76, 78, PadNumeric),
		"originatorCode":   NewField("Originator Status Code", 79, 79, PadNone),
		"odfiId":           NewField("Originating DFI Identification", 80, 87, PadAlphameric),
		"batchNumber":      NewField("Batch Number", 88, 94, PadNumeric),
	})

	mustSet(r, "recordType", "5")
	return r
}

// NewBatchControl returns a batch control record ("8").
func NewBatchControl() *Record {
	r := newRecord(KindBatchControl, map[string]FieldDescriptor{
		"recordType":   NewField("Record Type", 1, 1, PadNone),
		"serviceCode":  NewField("Service Class Code", 2, 4, PadNumeric),
		"entryCount":   NewField("Entry/Addenda Count", 5, 10, PadNumeric),
		"entryHash":    NewField("Entry Hash", 11, 20, PadNumeric),
		"debitAmount":  NewField("Total Debit Entry Dollar Amount", 21, 32, PadNumeric),
		"creditAmount": NewField("Total Credit Entry Dollar Amount", 33, 44, PadNumeric),
		"companyId":    NewField("Company Identification", 45, 54, PadAlphameric),
		"authCode":     NewField("Message Authentication Code", 55, 73, PadAlphameric),
		"reserved":     NewField("Reserved", 74, 79, PadNone),
		"odfiId":       NewField("Originating DFI Identification", 80, 87, PadNone),
		"batchNumber":  NewField("Batch Number", 88, 94, PadNumeric),
	})

	mustSet(r, "recordType", "8")
	return r
}

// NewEntryDetail returns an entry detail record ("6"). Addenda records are
// not supported, so the addenda indicator is fixed at "0".
//
// odfiId and sequenceNumber are named views over sub-ranges of the trace
// number: the trace number is their concatenation, and writing one sub-field
// never clears the other. Reading traceNumber reflects the latest bytes
// regardless of which field wrote them.
func NewEntryDetail() *Record {
	r := newRecord(KindEntryDetail, map[string]FieldDescriptor{
		"recordType":       NewField("Record Type", 1, 1, PadNone),
		"transactionCode":  NewField("Transaction Code", 2, 3, PadNumeric),
		"rdfiId":           NewField("Receiving DFI Identification", 4, 11, PadNone),
		"checkDigit":       NewField("Check Digit", 12, 12, PadNumeric),
		"dfiAccountNumber": NewField("DFI Account Number", 13, 29, PadAlphameric),
		"amount":           NewField("Amount", 30, 39, PadNumeric),
		"idNumber":         NewField("Individual Identification Number", 40, 54, PadAlphameric),
		"name":             NewField("Individual Name", 55, 76, PadAlphameric),
		"data":             NewField("Discretionary Data", 77, 78, PadAlphameric),
		"addenda":          NewField("Addenda Record Indicator", 79, 79, PadNumeric),
		"traceNumber":      NewField("Trace Number", 80, 94, PadNumeric),
		"odfiId":           NewField("Trace Number - Originating DFI Identification", 80, 87, PadNone),
		"sequenceNumber":   NewField("Trace Number - Sequence Number", 88, 94, PadNumeric),
	})

	mustSet(r, "recordType", "6")
	mustSet(r, "addenda", "0")
	return r
}

// mustSet writes a structural default during construction. The record is
// unlocked and the field names are literals from the layout above, so a
// failure here is a programming error.
func mustSet(r *Record, name, value string) {
	if err := r.SetValue(name, value); err != nil {
		panic(err)
	}
}
