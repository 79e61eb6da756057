package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"items-api/store"
)

const MessageNotFound = "Item not found"

type BadRequestError struct {
	Err error
}

func (e *BadRequestError) Error() string {
	return "invalid request body: " + e.Err.Error()
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// writeError maps every failure to an explicit response so no request is
// left unanswered.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest *BadRequestError

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: MessageNotFound})
	case errors.As(err, &badRequest):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
			Error:   badRequest.Err.Error(),
		})
	default:
		log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}
