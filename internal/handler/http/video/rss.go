package video

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

const feedContentType = "application/rss+xml; charset=utf-8"

// ChannelFeedHandler renders one channel's recent records as a feed.
type ChannelFeedHandler struct{ Svc *catalog.Service }

func (h ChannelFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelName string `json:"channel_name"`
		Days        int    `json:"days"`
		Limit       int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	doc, err := h.Svc.ChannelFeed(r.Context(), req.ChannelName, req.Days, req.Limit)
	if err != nil {
		respond.SafeError(w, err)
		return
	}

	w.Header().Set("Content-Type", feedContentType)
	_, _ = w.Write([]byte(doc))
}

// RecentFeedHandler renders every channel's records from the last N hours
// as a feed. The hours_ago query parameter is clamped server-side.
type RecentFeedHandler struct{ Svc *catalog.Service }

func (h RecentFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hoursAgo := catalog.MaxHoursAgo
	if raw := r.URL.Query().Get("hours_ago"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, errors.New("hours_ago must be an integer"))
			return
		}
		hoursAgo = parsed
	}

	doc, err := h.Svc.RecentFeed(r.Context(), hoursAgo)
	if err != nil {
		respond.SafeError(w, err)
		return
	}

	w.Header().Set("Content-Type", feedContentType)
	_, _ = w.Write([]byte(doc))
}
