// Package video provides the HTTP handlers of the catalogue API: window
// queries, feed rendering and ingestion, record upserts, and channel
// management.
package video

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"vid-catalog/internal/domain/entity"
)

// ViewCount marshals a view counter that may be unknown. Unknown counts
// serialize as the string "?" and parse back from it, so round-trips
// through JSON preserve the distinction from zero.
type ViewCount int64

// MarshalJSON renders unknown counts as "?" and known counts as numbers.
func (v ViewCount) MarshalJSON() ([]byte, error) {
	if int64(v) == entity.ViewsUnknown {
		return []byte(`"?"`), nil
	}
	return []byte(strconv.FormatInt(int64(v), 10)), nil
}

// UnmarshalJSON accepts a number, a numeric string, or "?".
func (v *ViewCount) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case float64:
		*v = ViewCount(int64(val))
		return nil
	case string:
		if val == "?" || val == "" {
			*v = ViewCount(entity.ViewsUnknown)
			return nil
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid views value %q", val)
		}
		*v = ViewCount(n)
		return nil
	default:
		return fmt.Errorf("invalid views value %v", raw)
	}
}

// DTO is the JSON structure of a video record.
type DTO struct {
	ChannelName     string    `json:"channel_name"`
	Title           string    `json:"title"`
	DatePublished   time.Time `json:"date_published"`
	DateLastUpdated time.Time `json:"date_lastupdated"`
	ChannelURL      string    `json:"channel_url"`
	Source          string    `json:"source"`
	URL             string    `json:"url"`
	Duration        float64   `json:"duration"`
	Description     string    `json:"description"`
	ImgSrc          string    `json:"img_src"`
	IframeSrc       string    `json:"iframe_src"`
	Views           ViewCount `json:"views"`
}

func toDTO(v *entity.Video) DTO {
	return DTO{
		ChannelName:     v.ChannelName,
		Title:           v.Title,
		DatePublished:   v.DatePublished,
		DateLastUpdated: v.DateLastUpdated,
		ChannelURL:      v.ChannelURL,
		Source:          v.Source,
		URL:             v.URL,
		Duration:        v.Duration,
		Description:     v.Description,
		ImgSrc:          v.ImgSrc,
		IframeSrc:       v.IframeSrc,
		Views:           ViewCount(v.Views),
	}
}

func toDTOs(videos []*entity.Video) []DTO {
	dtos := make([]DTO, 0, len(videos))
	for _, v := range videos {
		dtos = append(dtos, toDTO(v))
	}
	return dtos
}

func fromDTO(d DTO) *entity.Video {
	return &entity.Video{
		ChannelName:     d.ChannelName,
		Title:           d.Title,
		DatePublished:   d.DatePublished,
		DateLastUpdated: d.DateLastUpdated,
		ChannelURL:      d.ChannelURL,
		Source:          d.Source,
		URL:             d.URL,
		Duration:        d.Duration,
		Description:     d.Description,
		ImgSrc:          d.ImgSrc,
		IframeSrc:       d.IframeSrc,
		Views:           int64(d.Views),
	}
}

func fromDTOs(dtos []DTO) []*entity.Video {
	videos := make([]*entity.Video, 0, len(dtos))
	for _, d := range dtos {
		videos = append(videos, fromDTO(d))
	}
	return videos
}
