package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"vid-catalog/internal/domain/entity"
)

// dateFormat is the RFC-2822 style timestamp format used by RSS documents.
// It keeps second-level precision and the numeric zone offset, so encoded
// records round-trip without loss.
const dateFormat = time.RFC1123Z

// viewsUnknownMarker stands in for a view count that could not be determined.
const viewsUnknownMarker = "?"

// cdata wraps text in a CDATA section so raw markup characters survive
// encoding without corrupting the document structure.
type cdata struct {
	Text string `xml:",cdata"`
}

type xmlItem struct {
	Title       cdata  `xml:"title"`
	PubDate     string `xml:"pubDate"`
	LastUpdated string `xml:"lastupdated"`
	Link        string `xml:"link"`
	ChannelURL  string `xml:"channel_url"`
	ChannelName cdata  `xml:"channel_name"`
	Description cdata  `xml:"description"`
	Thumbnail   string `xml:"thumbnail"`
	Creator     string `xml:"dc:creator"`
	Duration    string `xml:"duration"`
	Views       string `xml:"views"`
	Host        string `xml:"host"`
	Iframe      string `xml:"iframe"`
}

type xmlChannel struct {
	Title string    `xml:"title"`
	Items []xmlItem `xml:"item"`
}

type xmlFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	DCNS    string     `xml:"xmlns:dc,attr"`
	Channel xmlChannel `xml:"channel"`
}

// Encode renders the given records as an RSS document with the given feed
// title. Items appear in input order; no re-sorting occurs. Every textual
// field is escaped: title, description and channel_name via CDATA sections,
// all remaining fields via standard XML escaping. Output is deterministic
// for identical inputs.
func Encode(title string, records []*entity.Video) (string, error) {
	doc := xmlFeed{
		Version: "2.0",
		DCNS:    "http://purl.org/dc/elements/1.1/",
		Channel: xmlChannel{
			Title: title,
			Items: make([]xmlItem, 0, len(records)),
		},
	}

	for _, v := range records {
		doc.Channel.Items = append(doc.Channel.Items, xmlItem{
			Title:       cdata{v.Title},
			PubDate:     v.DatePublished.Format(dateFormat),
			LastUpdated: v.DateLastUpdated.Format(dateFormat),
			Link:        v.URL,
			ChannelURL:  v.ChannelURL,
			ChannelName: cdata{v.ChannelName},
			Description: cdata{v.Description},
			Thumbnail:   v.ImgSrc,
			Creator:     v.ChannelName,
			Duration:    formatDuration(v.Duration),
			Views:       formatViews(v.Views),
			Host:        v.Source,
			Iframe:      v.IframeSrc,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode feed: %w", err)
	}
	return xml.Header + string(out), nil
}

// Decode parses a feed document back into video records, preserving item
// order. It fails with an error wrapping ErrMalformedFeed when the document
// is not well-formed feed markup, with a MissingFieldError when a required
// element is absent, and with an InvalidTimestampError on unparseable dates.
//
// Optional elements default rather than fail: description, thumbnail and
// iframe default to empty, duration to 0 and views to the unknown marker.
func Decode(document string) ([]*entity.Video, error) {
	parsed, err := gofeed.NewParser().ParseString(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	records := make([]*entity.Video, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		v, err := decodeItem(i, item)
		if err != nil {
			return nil, err
		}
		records = append(records, v)
	}
	return records, nil
}

func decodeItem(idx int, item *gofeed.Item) (*entity.Video, error) {
	if item.Title == "" {
		return nil, &MissingFieldError{Item: idx, Field: "title"}
	}
	if item.Link == "" {
		return nil, &MissingFieldError{Item: idx, Field: "link"}
	}
	channelName := item.Custom["channel_name"]
	if channelName == "" {
		return nil, &MissingFieldError{Item: idx, Field: "channel_name"}
	}
	channelURL := item.Custom["channel_url"]
	if channelURL == "" {
		return nil, &MissingFieldError{Item: idx, Field: "channel_url"}
	}
	host := item.Custom["host"]
	if host == "" {
		return nil, &MissingFieldError{Item: idx, Field: "host"}
	}

	published, err := decodeTimestamp(idx, "pubDate", item.Published)
	if err != nil {
		return nil, err
	}
	lastUpdated, err := decodeTimestamp(idx, "lastupdated", item.Custom["lastupdated"])
	if err != nil {
		return nil, err
	}

	views, err := decodeViews(idx, item.Custom["views"])
	if err != nil {
		return nil, err
	}

	duration := 0.0
	if raw := item.Custom["duration"]; raw != "" {
		duration, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || duration < 0 {
			return nil, &InvalidValueError{Item: idx, Field: "duration", Value: raw}
		}
	}

	return &entity.Video{
		ChannelName:     channelName,
		Title:           item.Title,
		DatePublished:   published,
		DateLastUpdated: lastUpdated,
		ChannelURL:      channelURL,
		Source:          host,
		URL:             item.Link,
		Duration:        duration,
		Description:     item.Description,
		ImgSrc:          item.Custom["thumbnail"],
		IframeSrc:       item.Custom["iframe"],
		Views:           views,
	}, nil
}

func decodeTimestamp(idx int, field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &MissingFieldError{Item: idx, Field: field}
	}
	t, err := time.Parse(dateFormat, raw)
	if err != nil {
		// Some producers emit an abbreviated zone name instead of an offset.
		if t, err2 := time.Parse(time.RFC1123, raw); err2 == nil {
			return t, nil
		}
		return time.Time{}, &InvalidTimestampError{Item: idx, Field: field, Value: raw}
	}
	return t, nil
}

func decodeViews(idx int, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == viewsUnknownMarker {
		return entity.ViewsUnknown, nil
	}
	views, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || views < 0 {
		return 0, &InvalidValueError{Item: idx, Field: "views", Value: raw}
	}
	return views, nil
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64)
}

func formatViews(views int64) string {
	if views == entity.ViewsUnknown {
		return viewsUnknownMarker
	}
	return strconv.FormatInt(views, 10)
}
