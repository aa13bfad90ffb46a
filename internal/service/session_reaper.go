package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// SessionReaperConfig holds settings for the session reaper.
type SessionReaperConfig struct {
	Interval time.Duration
	IdleTTL  time.Duration
}

// IdleReaper removes workspaces that have not been used recently.
type IdleReaper interface {
	ReapIdle(now time.Time, ttl time.Duration) int
}

// SessionReaper periodically evicts idle workspaces so abandoned documents
// do not stay in memory.
type SessionReaper struct {
	target IdleReaper
	cfg    SessionReaperConfig
	now    func() time.Time
}

// NewSessionReaper creates a new SessionReaper.
func NewSessionReaper(target IdleReaper, cfg SessionReaperConfig) *SessionReaper {
	return &SessionReaper{target: target, cfg: cfg, now: time.Now}
}

// Start runs the sweep loop until ctx is canceled.
func (r *SessionReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	log.Infof("sessionReaper: started (interval=%s, idleTTL=%s)", r.cfg.Interval, r.cfg.IdleTTL)

	for {
		select {
		case <-ctx.Done():
			log.Infof("sessionReaper: shutdown complete")
			return
		case <-ticker.C:
			if n := r.target.ReapIdle(r.now().UTC(), r.cfg.IdleTTL); n > 0 {
				log.Infof("sessionReaper: evicted %d idle workspaces", n)
			}
		}
	}
}
