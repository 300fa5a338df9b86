// Package catalog provides the query and ingestion use cases of the video
// catalogue. It resolves request time windows, merges results across
// channels, guards bulk ingestion, and bridges records to the feed codec.
package catalog

import (
	"errors"
	"fmt"
)

// DefaultMaxBatchSize is the bulk ingestion cap applied when no explicit
// limit is configured.
const DefaultMaxBatchSize = 1000

// ErrChannelRequired indicates that an operation needing a channel scope
// was called without one.
var ErrChannelRequired = errors.New("channel name is required")

// ErrKeywordRequired indicates that a search was requested without a keyword.
var ErrKeywordRequired = errors.New("search keyword is required")

// BatchTooLargeError indicates that a bulk ingestion exceeded the configured
// cap. The whole batch is rejected; no records are applied.
type BatchTooLargeError struct {
	Size int
	Max  int
}

// Error returns a formatted message with the offending and maximum sizes.
func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("batch of %d records exceeds the maximum of %d", e.Size, e.Max)
}
