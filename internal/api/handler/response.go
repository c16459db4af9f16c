package handler

// successResponse is the canonical success envelope. The audit middleware
// derives its success flag from this shape, so handlers always set Success
// explicitly.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(message string, data any) successResponse {
	return successResponse{Success: true, Message: message, Data: data}
}
