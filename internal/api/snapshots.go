package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/openparl/tally/pkg/handlers"
	"github.com/openparl/tally/pkg/routes"
	"github.com/openparl/tally/pkg/storage"
)

// snapshotHandler serves archived page snapshots from blob storage.
type snapshotHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newSnapshotHandler(store storage.System, logger *slog.Logger) *snapshotHandler {
	return &snapshotHandler{
		store:  store,
		logger: logger.With("handler", "snapshots"),
	}
}

func (h *snapshotHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/snapshots",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
			{Method: "DELETE", Pattern: "/{key...}", Handler: h.remove},
		},
	}
}

func (h *snapshotHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, snapshotStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

func (h *snapshotHandler) remove(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.store.Delete(r.Context(), key); err != nil {
		handlers.RespondError(w, h.logger, snapshotStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func snapshotStatus(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
