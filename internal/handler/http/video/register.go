package video

import (
	"net/http"

	"vid-catalog/internal/handler/http/auth"
	"vid-catalog/internal/usecase/catalog"
)

// Middleware applied to the mutating routes only.
type Middleware func(http.Handler) http.Handler

// Register wires the video routes into the mux. guard authenticates
// mutating requests; limit rate-limits them. With dev true the seed and
// clear routes are exposed as well.
func Register(mux *http.ServeMux, svc *catalog.Service, guard *auth.Guard, limit Middleware, dev bool) {
	protect := func(h http.Handler) http.Handler {
		return guard.Middleware(limit(h))
	}

	mux.Handle("POST   /query", QueryHandler{svc})
	mux.Handle("POST   /rss", ChannelFeedHandler{svc})
	mux.Handle("GET    /rss/all", RecentFeedHandler{svc})
	mux.Handle("GET    /channels", ListChannelsHandler{svc})
	mux.Handle("GET    /search", SearchHandler{svc})

	mux.Handle("PUT    /put/video", protect(PutHandler{svc}))
	mux.Handle("PUT    /put/videos", protect(PutBatchHandler{svc}))
	mux.Handle("PUT    /put/rss", protect(IngestFeedHandler{svc}))
	mux.Handle("DELETE /channel/{name}", protect(DeleteChannelHandler{svc}))

	if dev {
		mux.Handle("PUT    /test/put/videos", DevSeedHandler{svc})
		mux.Handle("POST   /test/clear/videos", DevClearHandler{svc})
	}
}
