package request

// ValidateTicketRequest is the body of POST /api/ingressos/validar,
// used by the staff console to check a scanned code.
type ValidateTicketRequest struct {
	Codigo string `json:"codigo" validate:"required"`
}
