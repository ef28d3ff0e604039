package stances

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/openparl/tally/pkg/handlers"
	"github.com/openparl/tally/pkg/routes"
)

// Handler provides HTTP endpoints for stance aggregation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "stances"),
	}
}

// Routes returns the route group definition for stance endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/stances",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/members/{id}", Handler: h.Member},
			{Method: "POST", Pattern: "/compare", Handler: h.Compare},
		},
	}
}

// Member returns the member's stance summary, or the stance on a single
// policy area when the area query parameter is set.
func (h *Handler) Member(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if area := r.URL.Query().Get("area"); area != "" {
		result, err := h.sys.Compute(r.Context(), id, area)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	summary, err := h.sys.Summary(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Compare returns stance summaries for the requested members over a
// shared set of policy areas.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var cmd CompareCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	comparison, err := h.sys.Compare(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, comparison)
}
