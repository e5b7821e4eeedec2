// SPDX-License-Identifier: MIT

package neutrality_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/neutrality/neutrality"
	"github.com/katalvlaran/neutrality/outcome"
	"github.com/katalvlaran/neutrality/series"
)

func TestBatch_KeepsOrder(t *testing.T) {
	t.Parallel()

	in := []series.Series{
		structuredSeries(t, 1),
		constantSeries(t),
		neutralSeries(t, 2),
		structuredSeries(t, 3),
	}

	reports, err := neutrality.Batch(context.Background(), in, neutrality.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, reports, len(in))

	for i, s := range in {
		want, err := neutrality.FromSeries(s)
		require.NoError(t, err)
		assert.Equal(t, want.Kind(), reports[i].Kind(), "series %d", i)
		if want.IsDefined() {
			assert.Equal(t, want.Float(), reports[i].Float(), "series %d", i)
		}
	}
	assert.Equal(t, outcome.KindDegenerateInput, reports[1].Kind())
}

func TestBatch_PropagatesFatalError(t *testing.T) {
	t.Parallel()

	in := []series.Series{structuredSeries(t, 1), singularNeutralSeries(t)}

	_, err := neutrality.Batch(context.Background(), in, neutrality.WithWorkers(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, neutrality.ErrSingularNeutral)
	assert.Contains(t, err.Error(), "series 1")
}

func TestBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := neutrality.Batch(ctx, []series.Series{structuredSeries(t, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatch_Empty(t *testing.T) {
	t.Parallel()

	reports, err := neutrality.Batch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
