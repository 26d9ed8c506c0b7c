// Package bind decodes request bodies and validates the result.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/validate"
)

const (
	defaultMaxBody   = 4 << 20
	defaultMaxUpload = 10 << 20
)

// JSON decodes r.Body into dest and validates it.
// Returns (errs, nil) on validation failure and (nil, err) when the body is
// malformed or larger than MAX_BODY_BYTES.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := Decode(r, dest); err != nil {
		return nil, err
	}
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Decode reads the JSON body into dest without validating it.
func Decode(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, int64(config.Int("MAX_BODY_BYTES", defaultMaxBody)))

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return nil
}

// File returns the multipart upload named field, capped at MAX_UPLOAD_BYTES.
// The caller closes the returned file.
func File(w http.ResponseWriter, r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	limit := int64(config.Int("MAX_UPLOAD_BYTES", defaultMaxUpload))
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, fmt.Errorf("upload too large (max %d bytes)", maxErr.Limit)
		}
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("missing file field %q", field)
	}
	return f, hdr, nil
}
