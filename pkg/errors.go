package pkg

// AppError is the error shape crossing the HTTP boundary. Code is a stable
// machine-readable identifier, Message is safe to return to clients, Err is
// the underlying cause kept for logging only.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
	HTTPStatus int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewDomainError wraps an underlying cause with a client-safe code and message.
func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

// NewDomainErrorSimple builds an AppError with no underlying cause.
func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// ToHTTPError renders the payload written in error responses. The cause is
// never serialized.
func (e *AppError) ToHTTPError() map[string]any {
	return map[string]any{
		"error": e.Message,
		"code":  e.Code,
	}
}
