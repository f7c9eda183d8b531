package codec

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// testRecord builds a record with a small synthetic layout so padding
// behavior can be checked against exact field widths.
func testRecord() *Record {
	return newRecord(KindFileControl, map[string]FieldDescriptor{
		"num":   NewField("Numeric", 1, 6, PadNumeric),
		"alpha": NewField("Alphameric", 7, 10, PadAlphameric),
		"rout":  NewField("Routing", 11, 20, PadRouting),
		"raw":   NewField("Untyped", 21, 26, PadNone),
	})
}

func TestRecord_Padding(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{
			name:  "numeric zero-fills on the left",
			field: "num",
			value: "5",
			want:  "000005",
		},
		{
			name:  "alphameric space-fills on the right",
			field: "alpha",
			value: "AB",
			want:  "AB  ",
		},
		{
			name:  "routing space-fills on the left",
			field: "rout",
			value: "123",
			want:  "       123",
		},
		{
			name:  "exact width passes through",
			field: "num",
			value: "123456",
			want:  "123456",
		},
		{
			name:  "overlong value truncates to the field width",
			field: "num",
			value: "1234567890",
			want:  "123456",
		},
		{
			name:  "overlong alphameric keeps the leftmost bytes",
			field: "alpha",
			value: "ABCDEFG",
			want:  "ABCD",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := testRecord()
			if err := r.SetValue(tc.field, tc.value); err != nil {
				t.Fatalf("SetValue failed: %v", err)
			}
			got, err := r.GetValue(tc.field)
			if err != nil {
				t.Fatalf("GetValue failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("field %q: got %q, want %q", tc.field, got, tc.want)
			}
			if len(r.Render()) != RecordWidth {
				t.Errorf("buffer length changed: got %d, want %d", len(r.Render()), RecordWidth)
			}
		})
	}
}

func TestRecord_UntypedShortWriteKeepsTrailingBytes(t *testing.T) {
	r := testRecord()

	if err := r.SetValue("raw", "ABCDEF"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	// A shorter untyped write only touches its own leading bytes.
	if err := r.SetValue("raw", "xy"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	got, _ := r.GetValue("raw")
	if got != "xyCDEF" {
		t.Errorf("got %q, want %q", got, "xyCDEF")
	}
}

func TestRecord_UnknownField(t *testing.T) {
	r := testRecord()

	err := r.SetValue("missing", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetValue: expected ErrUnknownField, got %v", err)
	}

	_, err = r.GetValue("missing")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("GetValue: expected ErrUnknownField, got %v", err)
	}
}

func TestRecord_Lock(t *testing.T) {
	r := testRecord()

	if err := r.SetValue("num", "42"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	r.Lock()
	r.Lock() // idempotent

	err := r.SetValue("num", "43")
	if !errors.Is(err, ErrRecordLocked) {
		t.Errorf("expected ErrRecordLocked, got %v", err)
	}

	// The failed write left nothing behind.
	got, err := r.GetValue("num")
	if err != nil {
		t.Fatalf("GetValue failed after lock: %v", err)
	}
	if got != "000042" {
		t.Errorf("locked record changed: got %q, want %q", got, "000042")
	}
}

func TestRecord_RenderIsLiteralBytes(t *testing.T) {
	r := testRecord()
	if err := r.SetValue("num", "7"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	line := r.Render()
	if len(line) != RecordWidth {
		t.Fatalf("rendered length: got %d, want %d", len(line), RecordWidth)
	}

	want := "000007" + strings.Repeat(" ", RecordWidth-6)
	if line != want {
		t.Errorf("render mismatch:\ngot  %q\nwant %q", line, want)
	}
}

func TestRecord_GetInt(t *testing.T) {
	testCases := []struct {
		name  string
		field string
		set   string
		want  int64
	}{
		{name: "zero-padded numeric", field: "num", set: "5", want: 5},
		{name: "space-padded routing", field: "rout", set: "123", want: 123},
		{name: "all zeros", field: "num", set: "0", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := testRecord()
			if err := r.SetValue(tc.field, tc.set); err != nil {
				t.Fatalf("SetValue failed: %v", err)
			}
			got, err := r.GetInt(tc.field)
			if err != nil {
				t.Fatalf("GetInt failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}

	t.Run("untouched field reads as zero", func(t *testing.T) {
		r := testRecord()
		got, err := r.GetInt("raw")
		if err != nil {
			t.Fatalf("GetInt failed: %v", err)
		}
		if got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})
}

func TestCheckDigit(t *testing.T) {
	testCases := []struct {
		routing string
		want    int
	}{
		// 3*0 + 7*7 + 1*6 + 3*4 + 7*0 + 1*1 + 3*2 + 7*5 = 109, digit 1
		{routing: "07640125", want: 1},
		// weighted sum already a multiple of ten
		{routing: "00000000", want: 0},
		// 3*1 = 3, digit 7
		{routing: "10000000", want: 7},
		// 3*9+7*9+1*9+3*9+7*9+1*9+3*9+7*9 = 288, digit 2
		{routing: "99999999", want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.routing, func(t *testing.T) {
			got := CheckDigit(tc.routing)
			if got != tc.want {
				t.Errorf("CheckDigit(%q) = %d, want %d", tc.routing, got, tc.want)
			}
			// The defining property: sum + digit is a multiple of ten.
			sum := 0
			for i, c := range tc.routing {
				sum += checkDigitWeights[i] * int(c-'0')
			}
			if (sum+got)%10 != 0 {
				t.Errorf("sum %d + digit %d is not a multiple of ten", sum, got)
			}
		})
	}
}

func TestEntryDetail_CheckDigitFollowsRoutingID(t *testing.T) {
	entry := NewEntryDetail()

	if err := entry.SetValue("rdfiId", "07640125"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	digit, err := entry.GetValue("checkDigit")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if digit != "1" {
		t.Errorf("check digit: got %q, want %q", digit, "1")
	}

	// Overwriting the routing id recomputes the digit.
	if err := entry.SetValue("rdfiId", "10000000"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	digit, _ = entry.GetValue("checkDigit")
	if digit != "7" {
		t.Errorf("check digit after rewrite: got %q, want %q", digit, "7")
	}
}

func TestEntryDetail_CheckDigitWriteStaysInItsField(t *testing.T) {
	entry := NewEntryDetail()

	// The account number starts on the byte right after the check digit.
	if err := entry.SetValue("dfiAccountNumber", "9876543"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := entry.SetValue("rdfiId", "07640125"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	account, err := entry.GetValue("dfiAccountNumber")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if account != "9876543          " {
		t.Errorf("account number after routing write: got %q", account)
	}
}

func TestEntryDetail_TraceNumberSubFields(t *testing.T) {
	entry := NewEntryDetail()

	if err := entry.SetValue("odfiId", "07640125"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if err := entry.SetInt("sequenceNumber", 3); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}

	trace, err := entry.GetValue("traceNumber")
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if trace != "076401250000003" {
		t.Errorf("trace number: got %q, want %q", trace, "076401250000003")
	}

	// Writing one sub-field does not clear the other.
	if err := entry.SetInt("sequenceNumber", 4); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	odfi, _ := entry.GetValue("odfiId")
	if odfi != "07640125" {
		t.Errorf("odfiId after sequence rewrite: got %q, want %q", odfi, "07640125")
	}
}

func TestLayoutDefaults(t *testing.T) {
	now := time.Date(2026, time.March, 2, 14, 30, 0, 0, time.UTC)

	t.Run("file header", func(t *testing.T) {
		header := NewFileHeader(now)
		for field, want := range map[string]string{
			"recordType":     "1",
			"priorityCode":   "01",
			"creationDate":   "260302",
			"creationTime":   "1430",
			"recordSize":     "094",
			"blockingFactor": "10",
			"formatCode":     "1",
		} {
			got, err := header.GetValue(field)
			if err != nil {
				t.Fatalf("GetValue(%q) failed: %v", field, err)
			}
			if got != want {
				t.Errorf("%s: got %q, want %q", field, got, want)
			}
		}
	})

	t.Run("record type digits", func(t *testing.T) {
		testCases := []struct {
			record *Record
			want   string
		}{
			{record: NewFileControl(), want: "9"},
			{record: NewBatchHeader(), want: "5"},
			{record: NewBatchControl(), want: "8"},
			{record: NewEntryDetail(), want: "6"},
		}
		for _, tc := range testCases {
			got, err := tc.record.GetValue("recordType")
			if err != nil {
				t.Fatalf("GetValue failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("%s record type: got %q, want %q", tc.record.Kind(), got, tc.want)
			}
		}
	})

	t.Run("entry addenda indicator is fixed at zero", func(t *testing.T) {
		entry := NewEntryDetail()
		got, err := entry.GetValue("addenda")
		if err != nil {
			t.Fatalf("GetValue failed: %v", err)
		}
		if got != "0" {
			t.Errorf("addenda: got %q, want %q", got, "0")
		}
	})
}
