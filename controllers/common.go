package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-retrofit/middleware"
	"go-retrofit/repository"
	"go-retrofit/storage"
)

// requestTimeout bounds every storage round trip made by a handler.
const requestTimeout = 5 * time.Second

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps repository errors onto status codes. Only unexpected
// failures are logged; their response carries the request id of the log line.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		middleware.LoggerFrom(r.Context()).WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":     "Internal server error",
			"requestId": middleware.RequestID(r.Context()),
		})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return false
	}
	return true
}

func parseIndex(w http.ResponseWriter, raw string) (int, bool) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid index")
		return 0, false
	}
	return index, true
}

// Health reports whether the blob store answers.
func Health(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		if _, err := store.Get(ctx, repository.VehiclesKey); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			middleware.LoggerFrom(r.Context()).WithError(err).Warn("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
