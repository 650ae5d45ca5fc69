package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartbudget-go/internal/domain/money"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDecodeError distinguishes a malformed amount from a malformed body.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, money.ErrInvalidAmount) {
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be a number")
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeInvalidID(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "invalid_id", "invalid id")
}
