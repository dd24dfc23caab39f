package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"eld-trip-service/internal/domain"
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

// decodeBody decodes exactly one JSON object and rejects unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeDomainError maps the engine's error taxonomy onto HTTP statuses:
// input validation and conflicting exceptions are the caller's to fix
// (400); schedulability failures carry the violated rule and simulated
// timestamp (422).
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		limit      *domain.LimitExceededError
		pairing    *domain.InvalidSplitPairingError
	)

	switch {
	case errors.As(err, &validation), errors.Is(err, domain.ErrConflictingExceptions):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &limit), errors.As(err, &pairing):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
