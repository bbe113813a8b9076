package response

const (
	StatusOk    = "ok"
	StatusError = "error"
)

// Response is the JSON envelope returned by every API handler.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok(message string) Response {
	return Response{
		Status:  StatusOk,
		Message: message,
	}
}

func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}
