package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/obs"
	"meal-delivery-service/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUnknownMode), errors.Is(err, services.ErrInvalidSequence):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrMalformedClashKey):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrMissingSingleton):
		log.Printf("req_id=%s %s failed: %v", requestID(r), op, err)
		writeError(w, r, http.StatusInternalServerError, "configuration error: "+err.Error())
	default:
		log.Printf("req_id=%s %s failed: %v", requestID(r), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func requestID(r *http.Request) string {
	return obs.RequestID(r.Context())
}

// queryDate reads a YYYY-MM-DD query parameter, defaulting to today.
func queryDate(r *http.Request, key string) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(v)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", v)
	}
	return t, nil
}

func pathID(r *http.Request, key string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(key))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, r.PathValue(key))
	}
	return id, nil
}
