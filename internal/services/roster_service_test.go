package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	apperrors "staffgap/internal/errors"
	"staffgap/internal/files"
	"staffgap/internal/infrastructure"
	"staffgap/internal/shared/testutil"
)

func newRosterService(t *testing.T, metrics *infrastructure.HeadcountMetrics) (*RosterService, *files.RosterStore) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	store := files.NewRosterStore(config.NewPaths(t.TempDir()), dataprocessing.NewRosterLoader(logger), logger)
	return NewRosterService(store, metrics, logger), store
}

func TestRosterServiceUploadStatusClear(t *testing.T) {
	svc, store := newRosterService(t, nil)
	ctx := context.Background()

	summary, err := svc.Upload(ctx, testutil.SampleRoster().XLSX(t))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Employees)
	assert.True(t, store.Present())

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Present)

	require.NoError(t, svc.Clear(ctx))
	status, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Present)
}

func TestRosterServiceUploadCountsOutcome(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := infrastructure.CreateHeadcountMetrics(mp.Meter("test"))
	require.NoError(t, err)

	svc, store := newRosterService(t, metrics)
	ctx := context.Background()

	_, err = svc.Upload(ctx, testutil.SampleRoster().XLSX(t))
	require.NoError(t, err)

	broken := testutil.SampleRoster()
	broken.Omit = []string{testutil.ServicesSheet}
	_, err = svc.Upload(ctx, broken.XLSX(t))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingSheet))
	assert.True(t, store.Present(), "a rejected upload keeps the previous workbook")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	bySuccess := map[bool]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "headcount_roster_uploads_total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value("success")
				bySuccess[v.AsBool()] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), bySuccess[true])
	assert.Equal(t, int64(1), bySuccess[false])
}
