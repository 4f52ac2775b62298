// Package apierr defines the structured error body returned by every API
// endpoint. Storage and upload failures are logged server-side with the raw
// error and surfaced to callers with an opaque message only.
package apierr

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidVariants = "INVALID_VARIANTS"
	CodeNameConflict    = "NAME_CONFLICT"
	CodeUserExists      = "USER_EXISTS"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeUploadFailed    = "UPLOAD_FAILED"
	CodeStorage         = "STORAGE_ERROR"
	CodeMail            = "MAIL_ERROR"
)

type Detail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Body struct {
	Error Detail `json:"error"`
}

func New(code, message string) Body {
	return Body{Error: Detail{Code: code, Message: message}}
}

func WithFields(code, message string, fields map[string]string) Body {
	return Body{Error: Detail{Code: code, Message: message, Fields: fields}}
}
