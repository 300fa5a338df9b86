// Package feed implements the conversion between video records and the
// RSS document format exchanged at the service boundary.
// Encoding renders an RSS 2.0 document with one item per record; decoding
// parses such a document back into records using the gofeed parser.
package feed

import (
	"errors"
	"fmt"
)

// ErrMalformedFeed indicates that a document could not be parsed as
// well-formed feed markup. Decode errors wrap this sentinel.
var ErrMalformedFeed = errors.New("malformed feed document")

// MissingFieldError indicates that a required element was absent from a
// feed item.
type MissingFieldError struct {
	Item  int    // zero-based item index within the document
	Field string // element name, e.g. "channel_name"
}

// Error returns a formatted error message naming the missing field.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("feed item %d: missing required field %q", e.Item, e.Field)
}

// InvalidTimestampError indicates that a timestamp element could not be
// parsed with the feed's date format.
type InvalidTimestampError struct {
	Item  int
	Field string
	Value string
}

// Error returns a formatted error message naming the field and raw value.
func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("feed item %d: invalid timestamp in %q: %q", e.Item, e.Field, e.Value)
}

// InvalidValueError indicates that a numeric element, such as duration or
// views, carried a value that could not be parsed or is out of range.
type InvalidValueError struct {
	Item  int
	Field string
	Value string
}

// Error returns a formatted error message naming the field and raw value.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("feed item %d: invalid value in %q: %q", e.Item, e.Field, e.Value)
}
