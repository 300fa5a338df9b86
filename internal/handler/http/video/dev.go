package video

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"vid-catalog/internal/domain/entity"
	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// Development-only handlers. They are registered solely in development
// mode so local clients can seed and reset the catalogue without crafting
// payloads.

// DevSeedHandler inserts generated sample records. The count query
// parameter selects how many (default 10), spread over the last hours at
// one record per channel rotation.
type DevSeedHandler struct{ Svc *catalog.Service }

func (h DevSeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count := 10
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(w, http.StatusBadRequest, errors.New("count must be a positive integer"))
			return
		}
		count = parsed
	}

	now := time.Now()
	videos := make([]*entity.Video, 0, count)
	for i := 0; i < count; i++ {
		channel := fmt.Sprintf("test_channel_%d", i%3)
		published := now.Add(-time.Duration(i) * time.Hour)
		videos = append(videos, &entity.Video{
			ChannelName:     channel,
			Title:           fmt.Sprintf("test_title_%d", i),
			DatePublished:   published,
			DateLastUpdated: published,
			ChannelURL:      "http://localhost/channel/" + channel,
			Source:          "localhost",
			URL:             fmt.Sprintf("http://localhost/video/%d", i),
			Duration:        60,
			Description:     fmt.Sprintf("test description %d", i),
			Views:           int64(100 * (i + 1)),
		})
	}

	if err := h.Svc.PutBatch(r.Context(), videos); err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"status": "ok", "count": count})
}

// DevClearHandler removes every record from the catalogue.
type DevClearHandler struct{ Svc *catalog.Service }

func (h DevClearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Clear(r.Context()); err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
