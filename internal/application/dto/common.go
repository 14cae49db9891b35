package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de operaciones sin payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
