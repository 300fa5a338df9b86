package video

import (
	"encoding/json"
	"net/http"

	httph "vid-catalog/internal/handler/http"
	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// PutHandler upserts a single record.
type PutHandler struct{ Svc *catalog.Service }

func (h PutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req DTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Put(r.Context(), fromDTO(req)); err != nil {
		respond.SafeError(w, err)
		return
	}

	httph.RecordVideosIngested("api", 1)
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PutBatchHandler upserts a batch of records in one transaction.
type PutBatchHandler struct{ Svc *catalog.Service }

func (h PutBatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req []DTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.PutBatch(r.Context(), fromDTOs(req)); err != nil {
		respond.SafeError(w, err)
		return
	}

	httph.RecordVideosIngested("api", len(req))
	respond.JSON(w, http.StatusOK, map[string]any{"status": "ok", "count": len(req)})
}
