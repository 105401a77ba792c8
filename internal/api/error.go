package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx backend answer. Mensagem carries the backend's
// human-readable text verbatim when the body had one; otherwise it is
// the generic fallback and Generic is set.
type Error struct {
	Status   int
	Mensagem string
	Generic  bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend %d: %s", e.Status, e.Mensagem)
}

// Message returns the text to surface to the user.
func (e *Error) Message() string {
	return e.Mensagem
}

// AsError unwraps a backend error from err, or nil for transport-level
// failures (request never completed).
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// UserMessage maps any client error onto the text shown to the user:
// the backend's verbatim message when present, a generic connectivity
// message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr := AsError(err); apiErr != nil {
		return apiErr.Mensagem
	}
	return GenericConnectivity
}

// Generic localized fallback messages.
const (
	GenericConnectivity = "Falha de conexão com o servidor. Tente novamente."
	GenericFailure      = "Não foi possível concluir a operação."
)
