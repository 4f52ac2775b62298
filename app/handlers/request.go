package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

const maxMultipartMemory = 10 << 20

// isMultipart reports whether the request carries a FormData body. Admin
// clients send multipart when attaching image files and plain JSON otherwise.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formFile returns the named upload, or (nil, nil) when the field is absent.
func formFile(r *http.Request, field string) (multipart.File, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

// multipartValue returns a pointer to the named form value, or nil when the
// field was not part of the submission. Presence matters for partial updates.
func multipartValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vals, ok := r.MultipartForm.Value[field]; ok && len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}
