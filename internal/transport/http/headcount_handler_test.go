package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	apperrors "staffgap/internal/errors"
	"staffgap/internal/exporter"
	"staffgap/internal/files"
	"staffgap/internal/middleware"
	"staffgap/internal/services"
	"staffgap/internal/shared/testutil"
	api "staffgap/pkg/contracts/api/v1"
	"staffgap/pkg/contracts/domain"
)

// MockHeadcountRunner is a mock implementation of HeadcountRunner
type MockHeadcountRunner struct {
	mock.Mock
}

func (m *MockHeadcountRunner) Run(ctx context.Context, req services.HeadcountRequest) (*domain.HeadcountReport, error) {
	args := m.Called(req.Windows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HeadcountReport), args.Error(1)
}

func (m *MockHeadcountRunner) Windows() []int {
	return m.Called().Get(0).([]int)
}

type headcountFixture struct {
	handler http.Handler
	store   *files.RosterStore
	logs    *testutil.BufferedSlogHandler
}

// newHeadcountFixture wires the real pipeline over a temporary data directory
func newHeadcountFixture(t *testing.T, withRoster bool, maxUpload int64) *headcountFixture {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	store := files.NewRosterStore(paths, dataprocessing.NewRosterLoader(logger), logger)
	if withRoster {
		_, err := store.Save(context.Background(), testutil.SampleRoster().XLSX(t))
		require.NoError(t, err)
	}

	svc := services.NewHeadcountService(dataprocessing.NewExportParser(logger), store, []int{13, 26}, nil, logger)
	handler := NewHeadcountHandler(svc, exporter.NewReportExporter(paths, logger), middleware.NewValidator(logger),
		nil, maxUpload, logger, apperrors.NewErrorHandler(logger, false))

	return &headcountFixture{handler: handler.Routes(), store: store, logs: logs}
}

func (f *headcountFixture) post(t *testing.T, target string, uploads map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, uploads)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func activeUpload(t *testing.T) map[string][]byte {
	return map[string][]byte{api.FieldActive: testutil.SampleExport().CSV(t)}
}

func TestHeadcountHandler_Run(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		uploads        func(t *testing.T) map[string][]byte
		expectedStatus int
		expectedViews  int
		expectedCode   string
	}{
		{
			name:           "default windows",
			target:         "/",
			uploads:        activeUpload,
			expectedStatus: http.StatusOK,
			expectedViews:  2,
		},
		{
			name:           "single window",
			target:         "/?windows=12",
			uploads:        activeUpload,
			expectedStatus: http.StatusOK,
			expectedViews:  1,
		},
		{
			name:   "combined views",
			target: "/?windows=13",
			uploads: func(t *testing.T) map[string][]byte {
				export := testutil.SampleExport().CSV(t)
				return map[string][]byte{api.FieldActive: export, api.FieldOppty: export}
			},
			expectedStatus: http.StatusOK,
			expectedViews:  2,
		},
		{
			name:           "unsupported window",
			target:         "/?windows=13,52",
			uploads:        activeUpload,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "non numeric window",
			target:         "/?windows=thirteen",
			uploads:        activeUpload,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:   "missing active export",
			target: "/",
			uploads: func(t *testing.T) map[string][]byte {
				return map[string][]byte{api.FieldOppty: testutil.SampleExport().CSV(t)}
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:   "narrow export body",
			target: "/",
			uploads: func(t *testing.T) map[string][]byte {
				export := testutil.SampleExport()
				export.BodyTitles = []string{"Type", "Resource Name"}
				export.Rows = []testutil.ExportRow{{Name: "Jane Doe", Hours: []string{"16"}}}
				return map[string][]byte{api.FieldActive: export.CSV(t)}
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "SHAPE_MISMATCH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHeadcountFixture(t, true, 1<<20)
			rec := f.post(t, tt.target, tt.uploads(t))

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeJSON(t, rec)["error_code"])
			}
			if tt.expectedViews > 0 {
				var report domain.HeadcountReport
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
				assert.Len(t, report.Views, tt.expectedViews)
				assert.Equal(t, "03/03/2025", report.ReportDate.Format(domain.WeekLabelLayout))
			}
		})
	}
}

func TestHeadcountHandler_RosterMissing(t *testing.T) {
	f := newHeadcountFixture(t, false, 1<<20)
	rec := f.post(t, "/", activeUpload(t))

	assert.Equal(t, http.StatusConflict, rec.Code)
	problem := decodeJSON(t, rec)
	assert.Equal(t, "ROSTER_MISSING", problem["error_code"])
	assert.Equal(t, "/errors/roster/not-uploaded", problem["type"])
}

func TestHeadcountHandler_PayloadTooLarge(t *testing.T) {
	export := testutil.SampleExport().CSV(t)
	single, _ := multipartBody(t, map[string][]byte{api.FieldActive: export})
	both, _ := multipartBody(t, map[string][]byte{api.FieldActive: export, api.FieldOppty: export})
	// the request limit is twice maxUpload; this one admits one export but not two
	pairLimit := int64(single.Len()+both.Len()) / 4
	require.Greater(t, 2*pairLimit, int64(single.Len()))
	require.Less(t, 2*pairLimit, int64(both.Len()))

	tests := []struct {
		name           string
		maxUpload      int64
		uploads        map[string][]byte
		expectedStatus int
	}{
		{
			name:           "single upload over the limit",
			maxUpload:      int64(single.Len()) / 4,
			uploads:        map[string][]byte{api.FieldActive: export},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "single upload within the limit",
			maxUpload:      pairLimit,
			uploads:        map[string][]byte{api.FieldActive: export},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "combined uploads over the limit",
			maxUpload:      pairLimit,
			uploads:        map[string][]byte{api.FieldActive: export, api.FieldOppty: export},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHeadcountFixture(t, true, tt.maxUpload)
			rec := f.post(t, "/", tt.uploads)

			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedStatus == http.StatusRequestEntityTooLarge {
				assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeJSON(t, rec)["error_code"])
			}
		})
	}
}

func TestHeadcountHandler_Export(t *testing.T) {
	t.Run("csv view", func(t *testing.T) {
		f := newHeadcountFixture(t, true, 1<<20)
		rec := f.post(t, "/export?format=csv&scope=active&window=13", activeUpload(t))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="headcount_active_13w_20250303.csv"`, rec.Header().Get("Content-Disposition"))

		body := strings.TrimPrefix(rec.Body.String(), "\ufeff")
		lines := strings.Split(strings.TrimSpace(body), "\n")
		assert.Equal(t, "Department,Week,Demand,Available,Gap", strings.TrimSpace(lines[0]))
		assert.Len(t, lines, 3)
	})

	t.Run("xlsx workbook", func(t *testing.T) {
		f := newHeadcountFixture(t, true, 1<<20)
		rec := f.post(t, "/export?format=xlsx", activeUpload(t))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, `attachment; filename="headcount_report_20250303.xlsx"`, rec.Header().Get("Content-Disposition"))

		wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer wb.Close()
		assert.Equal(t, []string{"Active 13w", "Active 26w", exporter.LegendSheet}, wb.GetSheetList())
	})

	t.Run("html legend", func(t *testing.T) {
		f := newHeadcountFixture(t, true, 1<<20)
		rec := f.post(t, "/export?format=html", activeUpload(t))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), exporter.LegendSheet)
		assert.Contains(t, rec.Body.String(), `<span class="name">Video</span>: <span class="num">1</span>`)
	})

	t.Run("missing format", func(t *testing.T) {
		f := newHeadcountFixture(t, true, 1<<20)
		rec := f.post(t, "/export", activeUpload(t))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("combined view without oppty", func(t *testing.T) {
		f := newHeadcountFixture(t, true, 1<<20)
		rec := f.post(t, "/export?format=csv&scope=combined", activeUpload(t))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHeadcountHandler_Windows(t *testing.T) {
	runner := &MockHeadcountRunner{}
	runner.On("Windows").Return([]int{13, 26})
	logger, _ := testutil.NewTestLogger(t)
	handler := NewHeadcountHandler(runner, nil, middleware.NewValidator(logger), nil, 1<<20, logger,
		apperrors.NewErrorHandler(logger, false)).Routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/windows", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, []interface{}{12.0, 13.0, 26.0}, body["allowed"])
	assert.Equal(t, []interface{}{13.0, 26.0}, body["defaults"])
	runner.AssertExpectations(t)
}

func TestHeadcountHandler_StorageErrorPassesThrough(t *testing.T) {
	runner := &MockHeadcountRunner{}
	runner.On("Run", []int(nil)).Return(nil, apperrors.NewStorageError("disk full", nil))
	logger, _ := testutil.NewTestLogger(t)
	handler := NewHeadcountHandler(runner, nil, middleware.NewValidator(logger), nil, 1<<20, logger,
		apperrors.NewErrorHandler(logger, false)).Routes()

	body, contentType := multipartBody(t, activeUpload(t))
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "STORAGE", decodeJSON(t, rec)["error_code"])
	runner.AssertExpectations(t)
}
