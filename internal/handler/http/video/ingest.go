package video

import (
	"errors"
	"io"
	"net/http"

	httph "vid-catalog/internal/handler/http"
	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// IngestFeedHandler accepts a feed document as the request body, stores its
// records, and returns them as stored.
type IngestFeedHandler struct{ Svc *catalog.Service }

func (h IngestFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	if len(body) == 0 {
		respond.Error(w, http.StatusBadRequest, errors.New("empty feed document"))
		return
	}

	stored, err := h.Svc.IngestFeed(r.Context(), string(body))
	if err != nil {
		respond.SafeError(w, err)
		return
	}

	httph.RecordVideosIngested("feed", len(stored))
	respond.JSON(w, http.StatusOK, toDTOs(stored))
}
