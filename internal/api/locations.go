package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Sourcing/internal/hermes"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

// LocationCache drops cached copies of a location after it changes.
type LocationCache interface {
	Invalidate(id scoring.LocationID)
}

type LocationsHandler struct {
	store  store.Store
	hermes hermes.Client
	cache  LocationCache
	logger *slog.Logger
}

func NewLocationsHandler(s store.Store, h hermes.Client, cache LocationCache, logger *slog.Logger) *LocationsHandler {
	return &LocationsHandler{store: s, hermes: h, cache: cache, logger: logger}
}

type LocationRequest struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes" validate:"dive,keys,required,endkeys"`
}

func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.store.ListLocations(r.Context(), store.LocationFilter{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if locs == nil {
		locs = []scoring.Location{}
	}
	writeJSON(w, http.StatusOK, locs)
}

func (h *LocationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}
	loc, err := h.store.GetLocation(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if loc == nil {
		writeError(w, http.StatusNotFound, "location not found")
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

// Put creates or replaces a location and its attribute bag.
// PUT /api/v1/locations/{id}
func (h *LocationsHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}
	var req LocationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc := &scoring.Location{ID: id, Name: req.Name, Attributes: req.Attributes}
	if loc.Attributes == nil {
		loc.Attributes = map[string]string{}
	}
	if err := h.store.UpsertLocation(r.Context(), loc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(id)
	}
	if h.hermes != nil {
		subject := hermes.SubjectLocationUpdated(strconv.FormatInt(int64(id), 10))
		if err := h.hermes.Publish(r.Context(), subject, hermes.LocationUpdatedEvent{LocationID: int64(id)}); err != nil {
			h.logger.Warn("failed to publish location event", "subject", subject, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, loc)
}

func locationID(w http.ResponseWriter, r *http.Request) (scoring.LocationID, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return 0, false
	}
	return scoring.LocationID(n), true
}
