package parser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/domain"
	"bridge/internal/parser"
	"bridge/internal/port"
)

type scriptedTranslator struct {
	err   error
	model string
	calls int
}

func (s *scriptedTranslator) Translate(_ context.Context, _ port.TranslateInput) (*port.TranslateOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &port.TranslateOutput{ModelUsed: s.model}, nil
}

func rateLimited(d time.Duration) error {
	return &parser.RateLimitError{Provider: "gemini", RetryAfter: d, Err: errors.New("429")}
}

func TestFallbackTranslator_RateLimitIsReturnedNotResent(t *testing.T) {
	primary := &scriptedTranslator{err: rateLimited(30 * time.Second)}
	secondary := &scriptedTranslator{model: "secondary"}
	f := parser.NewFallbackTranslator([]port.DocumentTranslator{primary, secondary}, []string{"a", "b"})

	_, err := f.Translate(context.Background(), port.TranslateInput{})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackTranslator_NextRequestSkipsOpenCircuit(t *testing.T) {
	primary := &scriptedTranslator{err: rateLimited(30 * time.Second)}
	secondary := &scriptedTranslator{model: "secondary"}
	f := parser.NewFallbackTranslator([]port.DocumentTranslator{primary, secondary}, []string{"a", "b"})

	_, err := f.Translate(context.Background(), port.TranslateInput{})
	require.Error(t, err)

	out, err := f.Translate(context.Background(), port.TranslateInput{})
	require.NoError(t, err)
	assert.Equal(t, "secondary", out.ModelUsed)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackTranslator_NonRateLimitErrorStops(t *testing.T) {
	primary := &scriptedTranslator{err: domain.ErrEmptyResponse}
	secondary := &scriptedTranslator{model: "secondary"}
	f := parser.NewFallbackTranslator([]port.DocumentTranslator{primary, secondary}, []string{"a", "b"})

	_, err := f.Translate(context.Background(), port.TranslateInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)

	// a non-429 failure does not open the circuit
	_, err = f.Translate(context.Background(), port.TranslateInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackTranslator_AllCircuitsOpen(t *testing.T) {
	first := &scriptedTranslator{err: rateLimited(90 * time.Second)}
	second := &scriptedTranslator{err: rateLimited(20 * time.Second)}
	f := parser.NewFallbackTranslator([]port.DocumentTranslator{first, second}, []string{"a", "b"})

	_, err := f.Translate(context.Background(), port.TranslateInput{})
	require.Error(t, err)
	_, err = f.Translate(context.Background(), port.TranslateInput{})
	require.Error(t, err)

	_, err = f.Translate(context.Background(), port.TranslateInput{})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
	assert.InDelta(t, float64(20*time.Second), float64(rlErr.RetryAfter), float64(time.Second))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}
