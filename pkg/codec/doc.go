// Package codec implements the fixed-width record model for NACHA-style
// bank interchange files.
//
// # Record Format
//
// Every record is exactly 94 bytes of printable ASCII. A record is a
// space-initialized byte buffer plus a layout: a set of named fields, each
// covering a byte range and carrying a padding kind. Five layouts exist
// (file header, file control, batch header, batch control, entry detail),
// and all of them share the one Record type; only the field tables and the
// structural defaults (record-type digit, format markers) differ.
//
// # Padding
//
// Writes fit the value to the field before copying it into the buffer:
//
//   - Numeric fields are right-justified and zero-filled on the left.
//   - Alphameric fields are left-justified and space-filled on the right.
//   - Routing fields are right-justified and space-filled on the left.
//     Zero-filling a routing identifier would change its meaning, which is
//     why these do not follow the numeric convention.
//   - Untyped fields are written as-is; shorter values leave the trailing
//     bytes of the range untouched.
//
// Padded text longer than the field is truncated to the field width. No
// write can change the buffer's length.
//
// # Locking
//
// While a record is unlocked any field may be overwritten any number of
// times. Lock is idempotent and irreversible; every write after it fails
// with ErrRecordLocked and leaves the buffer untouched. Reads keep working.
//
// # Check Digit
//
// On entry detail records, writing the receiving DFI routing id also
// rewrites the check digit: the routing digits are weighted positionally by
// 3, 7, 1, 3, 7, 1, 3, 7 and the digit is what brings the weighted sum up
// to a multiple of ten.
//
// # Rendering
//
// Render returns the literal 94 buffer bytes decoded as text. It is the
// record line that appears in the output file, never an escaped or debug
// form; a single escaped byte would corrupt every downstream control total.
package codec
