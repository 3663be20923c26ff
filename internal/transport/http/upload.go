package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "staffgap/internal/errors"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// parseMultipart limits the body to maxBytes and parses the form
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.ErrPayloadTooLarge
		}
		return apperrors.InvalidRequestWithError(err)
	}
	return nil
}

// formFile opens an uploaded file. A missing required field is a
// validation error; a missing optional one returns nil.
func formFile(r *http.Request, field string, required bool) (multipart.File, error) {
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return nil, apperrors.ErrValidation(field, fmt.Sprintf("%s file is required", field))
		}
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.InvalidRequestWithError(err)
	}
	return file, nil
}

// readFormFile reads a required uploaded file completely
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, err := formFile(r, field, true)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.InvalidRequestWithError(err)
	}
	return data, nil
}
