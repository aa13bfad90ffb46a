package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"bridge/internal/port"
)

// circuitState tracks rate-limit backoff for a single translator.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackTranslator routes each request to the first translator whose
// circuit is closed. A 429 opens that translator's circuit until its
// Retry-After and is returned to the caller unchanged; the same request is
// never re-sent, later requests go to the next model.
type FallbackTranslator struct {
	translators []port.DocumentTranslator
	circuits    []*circuitState
	names       []string
	now         func() time.Time
}

// NewFallbackTranslator creates a FallbackTranslator from an ordered list of
// translators and their names.
func NewFallbackTranslator(translators []port.DocumentTranslator, names []string) *FallbackTranslator {
	circuits := make([]*circuitState, len(translators))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackTranslator{
		translators: translators,
		circuits:    circuits,
		names:       names,
		now:         time.Now,
	}
}

func (f *FallbackTranslator) Translate(ctx context.Context, input port.TranslateInput) (*port.TranslateOutput, error) {
	now := f.now()
	var earliestReset time.Time

	for i, t := range f.translators {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Debugf("parser.FallbackTranslator: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			earliestReset = earliest(earliestReset, resetAt)
			continue
		}

		out, err := t.Translate(ctx, input)
		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			log.Warnf("parser.FallbackTranslator: %s rate limited, next request goes to the following model: %v", f.names[i], err)
			f.circuits[i].open(now.Add(rlErr.RetryAfter))
		}
		return out, err
	}

	retryAfter := earliestReset.Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return nil, &RateLimitError{Provider: "all", RetryAfter: retryAfter, Err: fmt.Errorf("all models rate limited")}
}

func earliest(cur, t time.Time) time.Time {
	if cur.IsZero() || t.Before(cur) {
		return t
	}
	return cur
}
