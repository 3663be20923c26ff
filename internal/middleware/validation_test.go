package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "staffgap/internal/errors"
	"staffgap/internal/shared/testutil"
)

type exportQuery struct {
	Format  string `query:"format" validate:"required,oneof=csv xlsx html"`
	Windows []int  `query:"windows" validate:"max=3,unique,dive,window"`
}

func TestValidatorValidateStruct(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewValidator(logger)

	tests := []struct {
		name       string
		query      exportQuery
		wantFields []string
	}{
		{"valid", exportQuery{Format: "xlsx", Windows: []int{13, 26}}, nil},
		{"twelve allowed", exportQuery{Format: "csv", Windows: []int{12}}, nil},
		{"missing format", exportQuery{Windows: []int{13}}, []string{"format"}},
		{"bad format", exportQuery{Format: "pdf"}, []string{"format"}},
		{"bad window", exportQuery{Format: "csv", Windows: []int{13, 52}}, []string{"windows[1]"}},
		{"repeated window", exportQuery{Format: "csv", Windows: []int{13, 13}}, []string{"windows"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.query)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var apiErr *apperrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			details, ok := apiErr.Details.(apperrors.ValidationErrors)
			require.True(t, ok)

			fields := make([]string, 0, len(details.Errors))
			for _, e := range details.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestFormatValidationErrorWindow(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	err := NewValidator(logger).ValidateStruct(exportQuery{Format: "csv", Windows: []int{4}})

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	details := apiErr.Details.(apperrors.ValidationErrors)
	assert.Equal(t, "windows[0] must be one of: 12, 13, 26", details.Errors[0].Message)
}

func TestContentTypeValidator(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := ContentTypeValidator(apperrors.NewErrorHandler(logger, false), "multipart/form-data")(okHandler)

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"multipart", http.MethodPost, "multipart/form-data; boundary=x", http.StatusOK},
		{"json rejected", http.MethodPost, "application/json", http.StatusUnsupportedMediaType},
		{"missing rejected", http.MethodPut, "", http.StatusUnsupportedMediaType},
		{"get skipped", http.MethodGet, "", http.StatusOK},
		{"delete skipped", http.MethodDelete, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/roster", strings.NewReader("x"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
