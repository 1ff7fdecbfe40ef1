package model

// Response is the envelope every Resource API endpoint answers with.
// Status is always present; exactly one of Data or Error is set.
type Response struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *APIError `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error kinds carried inside the envelope.
const (
	KindUnauthorized        = "unauthorized"
	KindNotFound            = "not_found"
	KindValidationError     = "validation_error"
	KindConstraintViolation = "constraint_violation"
	KindEmptyCollection     = "empty_collection"
	KindUpstreamUnavailable = "upstream_unavailable"
	KindInternal            = "internal"
)

// APIError is the structured error half of the envelope. It implements
// error so the web tier can branch on Kind after a client call.
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Kind + ": " + e.Message
}

func Success(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func Failure(kind, message string) Response {
	return Response{Status: StatusError, Error: &APIError{Kind: kind, Message: message}}
}
