package lutreport

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	rows, err := Measure(context.Background(), 1000, 4)
	require.NoError(t, err)
	require.Len(t, rows, len(Functions()))

	bounds := map[string]float64{
		"sqrt":  1e-4,
		"sin":   1e-3,
		"cos":   1e-3,
		"asin":  1e-3,
		"acos":  1e-3,
		"atan2": 1e-4,
	}

	for i, row := range rows {
		t.Run(row.Function, func(t *testing.T) {
			require.Equal(t, Functions()[i], row.Function)
			require.Equal(t, 1000, row.Samples)
			assert.Less(t, row.Max, bounds[row.Function])
			assert.LessOrEqual(t, row.Mean, row.Max)
			assert.LessOrEqual(t, row.P99, row.Max)
			assert.GreaterOrEqual(t, row.StdDev, 0.0)
			assert.NotEmpty(t, row.WorstInput)
		})
	}
}

func TestMeasure_Deterministic(t *testing.T) {
	serial, err := Measure(context.Background(), 500, 1)
	require.NoError(t, err)
	parallel, err := Measure(context.Background(), 500, 7)
	require.NoError(t, err)
	unlimited, err := Measure(context.Background(), 500, 0)
	require.NoError(t, err)

	require.Equal(t, serial, parallel)
	require.Equal(t, serial, unlimited)
}

func TestMeasure_Errors(t *testing.T) {
	_, err := Measure(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrTooFewSamples)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Measure(ctx, 100, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCSV_RoundTrip(t *testing.T) {
	rows, err := Measure(context.Background(), 200, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	require.True(t, strings.HasPrefix(buf.String(),
		"function,samples,mean_abs_error,stddev_abs_error,p99_abs_error,max_abs_error,worst_input\n"))

	loaded, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, len(rows))
	for i := range rows {
		require.Equal(t, rows[i].Function, loaded[i].Function)
		require.Equal(t, rows[i].WorstInput, loaded[i].WorstInput)
		require.InDelta(t, rows[i].Max, loaded[i].Max, 1e-12)
	}
}
