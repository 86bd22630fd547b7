package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// maxJSONBody caps API request bodies.
const maxJSONBody = 64 << 10

type errorDTO struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode api response", "status", status, "error", err)
	}
}

// writeError is the body of a failed auth or lookup call: {"error":"..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorDTO{Error: message})
}

// writeResult is the body of a customer mutation: {"success":..,"message":".."}.
func writeResult(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, ResultDTO{Success: success, Message: message})
}

// readJSON decodes exactly one JSON object into dst. Unknown fields,
// trailing data and bodies over maxJSONBody are rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}
