package entity_test

import (
	"errors"
	"testing"
	"time"

	"vid-catalog/internal/domain/entity"
)

func validVideo() *entity.Video {
	now := time.Now()
	return &entity.Video{
		ChannelName:     "test_channel",
		Title:           "test_title",
		DatePublished:   now,
		DateLastUpdated: now,
		ChannelURL:      "http://localhost/channel/test_channel",
		Source:          "rumble.com",
		URL:             "http://localhost/video/test_title",
		Duration:        60,
		Description:     "test description",
		ImgSrc:          "http://localhost/img/test_title.png",
		IframeSrc:       "http://localhost/iframe/test_title",
		Views:           100,
	}
}

func TestVideoValidate_OK(t *testing.T) {
	if err := validVideo().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestVideoValidate_UnknownViewsAllowed(t *testing.T) {
	v := validVideo()
	v.Views = entity.ViewsUnknown
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestVideoValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.Video)
		field  string
	}{
		{"missing channel name", func(v *entity.Video) { v.ChannelName = "" }, "channel_name"},
		{"missing title", func(v *entity.Video) { v.Title = "" }, "title"},
		{"missing url", func(v *entity.Video) { v.URL = "" }, "url"},
		{"zero publish date", func(v *entity.Video) { v.DatePublished = time.Time{} }, "date_published"},
		{"zero update date", func(v *entity.Video) { v.DateLastUpdated = time.Time{} }, "date_lastupdated"},
		{"negative duration", func(v *entity.Video) { v.Duration = -1 }, "duration"},
		{"negative views", func(v *entity.Video) { v.Views = -2 }, "views"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVideo()
			tt.mutate(v)
			err := v.Validate()
			var verr *entity.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http ok", "http://example.com/video/1", false},
		{"https ok", "https://example.com/video/1", false},
		{"empty", "", true},
		{"no scheme", "example.com/video/1", true},
		{"ftp scheme", "ftp://example.com/video/1", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
