// SPDX-License-Identifier: MIT

package neutrality

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/neutrality/series"
)

// Batch evaluates FromSeries for every input concurrently, bounded by
// WithWorkers. Reports keep the input order.
//
// Evaluations are independent; the first error (or ctx cancellation) stops
// scheduling of the remaining series and is returned, annotated with the
// index of the failing series.
func Batch(ctx context.Context, in []series.Series, opts ...Option) ([]Report, error) {
	o := gatherOptions(opts)
	out := make([]Report, len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, s := range in {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := FromSeries(s, opts...)
			if err != nil {
				return fmt.Errorf("%s: series %d: %w", opBatch, i, err)
			}
			out[i] = rep

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, neutralityErrorf(opBatch, err)
	}

	return out, nil
}
