// SPDX-License-Identifier: MIT

package outcome_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/neutrality/outcome"
)

func TestZeroResultIsUndefined(t *testing.T) {
	t.Parallel()

	var r outcome.Result
	assert.False(t, r.IsDefined())
	assert.Equal(t, outcome.KindUnset, r.Kind())

	v, ok := r.Value()
	assert.False(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestDefined(t *testing.T) {
	t.Parallel()

	r := outcome.Defined(0)
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, 0.0, v, "a defined zero is a real zero")
	assert.Empty(t, r.Reason())
	assert.Equal(t, "0", r.String())

	inf := outcome.Defined(math.Inf(1))
	assert.True(t, inf.IsDefined(), "non-finite values are still defined")
}

func TestUndefined(t *testing.T) {
	t.Parallel()

	r := outcome.Undefined(outcome.KindInvalidReference, "zero at index 2")
	assert.False(t, r.IsDefined())
	assert.True(t, math.IsNaN(r.Float()))
	assert.Equal(t, outcome.KindInvalidReference, r.Kind())
	assert.Equal(t, "undefined(invalid-reference: zero at index 2)", r.String())

	assert.Panics(t, func() { outcome.Undefined(outcome.KindDefined, "") })
	assert.Panics(t, func() { outcome.Undefined(outcome.KindUnset, "") })
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	w := outcome.Warnf(outcome.WarnNumericFallback, "naive term %s", "overflowed")
	assert.Equal(t, "numeric-fallback: naive term overflowed", w.String())

	r := outcome.Defined(1.5, w)
	assert.True(t, r.HasWarning(outcome.WarnNumericFallback))
	assert.False(t, r.HasWarning(outcome.WarnIllConditioned))

	r2 := r.WithWarnings(outcome.Warnf(outcome.WarnIllConditioned, "cond"))
	assert.Len(t, r2.Warnings(), 2)
	assert.Len(t, r.Warnings(), 1, "WithWarnings must not alias the receiver")

	ws := r2.Warnings()
	ws[0].Message = "mutated"
	assert.Equal(t, "naive term overflowed", r2.Warnings()[0].Message, "Warnings returns a copy")
}

func TestKindAndCodeStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "degenerate-input", outcome.KindDegenerateInput.String())
	assert.Equal(t, "kind(42)", outcome.Kind(42).String())
	assert.Equal(t, "negative-neutral-divergence", outcome.WarnNegativeNeutralDivergence.String())
	assert.Equal(t, "warning(0)", outcome.WarningCode(0).String())
}

func TestLogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("kl", "result", outcome.Defined(0.25, outcome.Warnf(outcome.WarnNumericFallback, "x")))
	logger.Info("kl", "result", outcome.Undefined(outcome.KindDegenerateInput, "constant"))

	out := buf.String()
	assert.True(t, strings.Contains(out, "result.kind=defined"), out)
	assert.True(t, strings.Contains(out, "result.value=0.25"), out)
	assert.True(t, strings.Contains(out, "result.warnings=[numeric-fallback]"), out)
	assert.True(t, strings.Contains(out, "result.reason=constant"), out)
}
