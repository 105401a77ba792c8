package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope the stub backend answers with. Error
// bodies carry the human-readable text in Mensagem so the client's
// verbatim-message extraction has something to surface.
type Response struct {
	Mensagem string `json:"mensagem,omitempty"`
	Erro     string `json:"erro,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK with the payload as the whole body
func ResponseOK(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data)
}

// returns 201 Created with the payload as the whole body
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, data)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, mensagem string) {
	ResponseJSON(w, http.StatusBadRequest, Response{Mensagem: mensagem})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, mensagem string) {
	ResponseJSON(w, http.StatusNotFound, Response{Mensagem: mensagem})
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, mensagem string) {
	ResponseJSON(w, http.StatusConflict, Response{Mensagem: mensagem})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, mensagem string) {
	ResponseJSON(w, http.StatusInternalServerError, Response{Mensagem: mensagem})
}
