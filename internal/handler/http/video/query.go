package video

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// QueryHandler serves structured window queries over the catalogue.
type QueryHandler struct{ Svc *catalog.Service }

func (h QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Start    string   `json:"start"`
		End      string   `json:"end"`
		Channels []string `json:"channels"`
		Limit    int      `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	if req.Start == "" || req.End == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("start and end are required"))
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("start must be in RFC3339 format"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("end must be in RFC3339 format"))
		return
	}

	videos, err := h.Svc.Query(r.Context(), catalog.QueryInput{
		Start:    start,
		End:      end,
		Channels: req.Channels,
		Limit:    req.Limit,
	})
	if err != nil {
		respond.SafeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(videos))
}
