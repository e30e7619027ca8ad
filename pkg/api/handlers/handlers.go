package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/origins"
	"github.com/cbodonnell/worldlens/pkg/state"
	"github.com/gorilla/mux"
)

// OriginStore resolves and stores map origins.
type OriginStore interface {
	origins.Resolver
	Save(ctx context.Context, name string, origin types.Origin) error
}

// OriginLister lists every stored map origin.
type OriginLister interface {
	ListOrigins(ctx context.Context) (map[string]types.Origin, error)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func HandleGetSnapshot(store state.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := store.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
			return
		}
		if snapshot == nil {
			http.Error(w, "No snapshot yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func HandleListOrigins(lister OriginLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := lister.ListOrigins(r.Context())
		if err != nil {
			log.Error("failed to list origins: %v", err)
			http.Error(w, "Failed to list origins", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func HandleGetOrigin(resolver origins.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		origin, err := resolver.Origin(r.Context(), name)
		if err != nil {
			if errors.Is(err, origins.ErrUnknownMap) {
				http.Error(w, "Unknown map", http.StatusNotFound)
				return
			}
			log.Error("failed to get origin of %s: %v", name, err)
			http.Error(w, "Failed to get origin", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, origin)
	}
}

func HandlePutOrigin(store OriginStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		var origin types.Origin
		if err := json.NewDecoder(r.Body).Decode(&origin); err != nil {
			http.Error(w, "Invalid origin", http.StatusBadRequest)
			return
		}
		if !finite(origin.X) || !finite(origin.Y) {
			http.Error(w, "Origin must be finite", http.StatusBadRequest)
			return
		}

		if err := store.Save(r.Context(), name, origin); err != nil {
			log.Error("failed to save origin of %s: %v", name, err)
			http.Error(w, "Failed to save origin", http.StatusInternalServerError)
			return
		}
		log.Info("Origin of %s set to (%g, %g)", name, origin.X, origin.Y)
		writeJSON(w, http.StatusOK, origin)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type healthResponse struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
	Tick    uint64 `json:"tick"`
	Map     string `json:"map,omitempty"`
}

func HandleHealthz(store state.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}
		snapshot, err := store.Get(r.Context())
		if err != nil {
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
			return
		}
		if snapshot != nil {
			resp.Session = snapshot.Session
			resp.Tick = snapshot.Tick
			resp.Map = snapshot.Map.Name
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
