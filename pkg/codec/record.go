package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordWidth is the fixed width of every record line in bytes.
const RecordWidth = 94

// RecordKind identifies which of the five record layouts a Record carries.
type RecordKind int

const (
	KindFileHeader RecordKind = iota
	KindFileControl
	KindBatchHeader
	KindBatchControl
	KindEntryDetail
)

// String returns the layout name, used in error messages.
func (k RecordKind) String() string {
	switch k {
	case KindFileHeader:
		return "FileHeader"
	case KindFileControl:
		return "FileControl"
	case KindBatchHeader:
		return "BatchHeader"
	case KindBatchControl:
		return "BatchControl"
	case KindEntryDetail:
		return "EntryDetail"
	}
	return fmt.Sprintf("RecordKind(%d)", int(k))
}

// Errors
var (
	ErrRecordLocked = &RecordError{"cannot set values on a locked record"}
	ErrUnknownField = &RecordError{"field is not defined in the record layout"}
)

// RecordError represents a record-level error
type RecordError struct {
	Message string
}

func (e *RecordError) Error() string {
	return e.Message
}

// Record is one fixed-width record: a 94-byte buffer initialized to spaces,
// a field layout keyed by name, and a lock flag. All five record kinds share
// this one type; only the layout and defaults differ.
//
// The buffer is never exposed directly. Field access goes through SetValue
// and GetValue so the two buffer invariants (always exactly 94 bytes, and
// immutable once locked) cannot be bypassed.
type Record struct {
	kind   RecordKind
	fields map[string]FieldDescriptor
	data   []byte
	locked bool
}

// newRecord allocates a space-filled buffer for the given layout.
func newRecord(kind RecordKind, fields map[string]FieldDescriptor) *Record {
	data := make([]byte, RecordWidth)
	for i := range data {
		data[i] = ' '
	}
	return &Record{
		kind:   kind,
		fields: fields,
		data:   data,
	}
}

// Kind returns the record's layout kind.
func (r *Record) Kind() RecordKind {
	return r.kind
}

// Locked reports whether the record has been locked.
func (r *Record) Locked() bool {
	return r.locked
}

// Lock makes the record immutable. Locking is idempotent and irreversible.
func (r *Record) Lock() {
	r.locked = true
}

// SetValue pads value per the field's padding kind and writes it into the
// field's byte range. Padded text longer than the field is truncated to the
// field width; the buffer never grows or shrinks. Fails if the record is
// locked or the field is not in the layout. A failed call leaves the buffer
// untouched.
func (r *Record) SetValue(name, value string) error {
	if r.locked {
		return ErrRecordLocked
	}
	field, ok := r.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownField, name, r.kind)
	}

	padded := padValue(value, field)
	if len(padded) > field.Width() {
		padded = padded[:field.Width()]
	}
	copy(r.data[field.Start:field.End], padded)

	// The check digit is derived from the routing id and is rewritten
	// whenever the routing id changes.
	if r.kind == KindEntryDetail && name == "rdfiId" {
		digit := CheckDigit(r.rawValue(field))
		cd := r.fields["checkDigit"]
		copy(r.data[cd.Start:cd.End], strconv.Itoa(digit))
	}
	return nil
}

// SetInt formats n in decimal and writes it via SetValue.
func (r *Record) SetInt(name string, n int64) error {
	return r.SetValue(name, strconv.FormatInt(n, 10))
}

// GetValue returns the exact bytes of the field's range as text, padding
// included. Fails if the field is not in the layout.
func (r *Record) GetValue(name string) (string, error) {
	field, ok := r.fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", ErrUnknownField, name, r.kind)
	}
	return r.rawValue(field), nil
}

// GetInt reads a field and parses it as a decimal integer, ignoring the
// leading zeros or spaces its padding produced. An all-padding field reads
// as zero.
func (r *Record) GetInt(name string) (int64, error) {
	text, err := r.GetValue(name)
	if err != nil {
		return 0, err
	}
	trimmed := strings.TrimLeft(text, " 0")
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not numeric: %w", name, err)
	}
	return n, nil
}

// Render returns the buffer's 94 bytes decoded as text, verbatim. This is
// the literal record line, not a debug representation.
func (r *Record) Render() string {
	return string(r.data)
}

func (r *Record) rawValue(field FieldDescriptor) string {
	return string(r.data[field.Start:field.End])
}

// padValue fits value to the field per its padding kind. Values already at
// or past the field width come back unchanged; the caller truncates.
func padValue(value string, field FieldDescriptor) string {
	width := field.Width()
	if len(value) >= width {
		return value
	}
	switch field.Pad {
	case PadNumeric:
		return strings.Repeat("0", width-len(value)) + value
	case PadAlphameric:
		return value + strings.Repeat(" ", width-len(value))
	case PadRouting:
		return strings.Repeat(" ", width-len(value)) + value
	}
	return value
}

// checkDigitWeights are the positional multipliers applied to the digits of
// an 8-digit routing id.
var checkDigitWeights = [8]int{3, 7, 1, 3, 7, 1, 3, 7}

// CheckDigit computes the verification digit for an 8-digit routing id: the
// digits are multiplied positionally by 3-7-1 weights, and the check digit
// is the smallest value that brings the weighted sum up to a multiple of
// ten. Bytes that are not decimal digits contribute nothing.
func CheckDigit(routing string) int {
	sum := 0
	for i := 0; i < len(routing) && i < len(checkDigitWeights); i++ {
		c := routing[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += checkDigitWeights[i] * int(c-'0')
	}
	return (10 - sum%10) % 10
}
