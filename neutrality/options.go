// SPDX-License-Identifier: MIT

// Package neutrality: functional configuration for the neutral divergence
// estimator. This file defines:
//   - Option (functional options with unexported state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package neutrality

import (
	"log/slog"
	"math"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultVerbose disables the diagnostic trace.
	DefaultVerbose = false

	// DefaultRankTolerance (<0) selects σmax·S·ε for the rank term and
	// max|λ|·S·ε for pseudo-determinants.
	DefaultRankTolerance = -1.0

	// DefaultExcerptSize is the side of the covariance block copied into a trace.
	DefaultExcerptSize = 4

	// DefaultWorkers (0) lets Batch use runtime.GOMAXPROCS(0) goroutines.
	DefaultWorkers = 0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRankToleranceInvalid = "neutrality: WithRankTolerance: tol must not be NaN or Inf"
	panicExcerptSizeInvalid   = "neutrality: WithExcerptSize: k must be >= 1"
	panicWorkersInvalid       = "neutrality: WithWorkers: n must be >= 0"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*options)

type options struct {
	verbose     bool
	logger      *slog.Logger
	rankTol     float64
	excerptSize int
	workers     int
}

func defaultOptions() options {
	return options{
		verbose:     DefaultVerbose,
		rankTol:     DefaultRankTolerance,
		excerptSize: DefaultExcerptSize,
		workers:     DefaultWorkers,
	}
}

// gatherOptions applies opts over the defaults; nil options are skipped.
func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// WithVerbose attaches a Trace to every defined Report. The returned value
// is unaffected.
func WithVerbose() Option {
	return func(o *options) { o.verbose = true }
}

// WithLogger sets the logger that receives the Trace at debug level when
// verbose mode is on. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRankTolerance overrides the singular-value threshold of the rank term
// (and the eigenvalue threshold of pseudo-determinants). A negative value
// restores the default. Panics on NaN or ±Inf.
func WithRankTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicRankToleranceInvalid)
	}

	return func(o *options) { o.rankTol = tol }
}

// WithExcerptSize sets the side of the covariance excerpt in a Trace.
// Panics if k < 1.
func WithExcerptSize(k int) Option {
	if k < 1 {
		panic(panicExcerptSizeInvalid)
	}

	return func(o *options) { o.excerptSize = k }
}

// WithWorkers bounds the number of concurrent evaluations in Batch.
// 0 selects runtime.GOMAXPROCS(0). Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}
