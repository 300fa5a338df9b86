package video

import (
	"net/http"

	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// SearchHandler returns records whose title or description matches the
// keyword query parameter.
type SearchHandler struct{ Svc *catalog.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	videos, err := h.Svc.Search(r.Context(), keyword)
	if err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(videos))
}
