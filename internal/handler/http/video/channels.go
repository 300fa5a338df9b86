package video

import (
	"errors"
	"net/http"

	"vid-catalog/internal/handler/http/respond"
	"vid-catalog/internal/usecase/catalog"
)

// ListChannelsHandler returns the distinct channel names in the catalogue.
type ListChannelsHandler struct{ Svc *catalog.Service }

func (h ListChannelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	names, err := h.Svc.ListChannelNames(r.Context())
	if err != nil {
		respond.SafeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respond.JSON(w, http.StatusOK, map[string][]string{"channels": names})
}

// DeleteChannelHandler removes every record of one channel.
type DeleteChannelHandler struct{ Svc *catalog.Service }

func (h DeleteChannelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("channel name is required"))
		return
	}

	if err := h.Svc.DeleteChannel(r.Context(), name); err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok", "channel": name})
}
