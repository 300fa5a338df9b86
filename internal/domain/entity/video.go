// Package entity defines the core domain entities and validation logic for the application.
// It contains the Video record tracked by the catalogue along with its
// validation rules and domain-specific errors.
package entity

import "time"

// ViewsUnknown is the sentinel view count for videos whose view count
// could not be determined by the ingesting crawler. It is rendered as the
// literal "?" in feed documents and JSON responses.
const ViewsUnknown int64 = -1

// Video represents a single video's metadata as tracked by the catalogue.
// URL uniquely identifies a record; upserts are keyed by it.
type Video struct {
	ChannelName     string
	Title           string
	DatePublished   time.Time
	DateLastUpdated time.Time
	ChannelURL      string
	Source          string
	URL             string
	Duration        float64
	Description     string
	ImgSrc          string
	IframeSrc       string
	Views           int64
}

// Validate checks the structural invariants of a video record.
// Required fields must be present and timestamps must be set; it fails fast
// at construction time rather than deferring to a store-level failure.
func (v *Video) Validate() error {
	if v.ChannelName == "" {
		return &ValidationError{Field: "channel_name", Message: "is required"}
	}
	if v.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if err := ValidateURL(v.URL); err != nil {
		return err
	}
	if v.DatePublished.IsZero() {
		return &ValidationError{Field: "date_published", Message: "is required"}
	}
	if v.DateLastUpdated.IsZero() {
		return &ValidationError{Field: "date_lastupdated", Message: "is required"}
	}
	if v.Duration < 0 {
		return &ValidationError{Field: "duration", Message: "must not be negative"}
	}
	if v.Views < 0 && v.Views != ViewsUnknown {
		return &ValidationError{Field: "views", Message: "must not be negative"}
	}
	return nil
}
