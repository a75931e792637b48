package notify

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is how often the unread badge is refreshed
const DefaultPollInterval = 30 * time.Second

// Poller keeps the unread counter fresh on a fixed interval
type Poller struct {
	sync     *Sync
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller returns a poller for s. A non-positive interval means
// DefaultPollInterval.
func NewPoller(s *Sync, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		sync:     s,
		interval: interval,
		logger:   s.logger,
	}
}

// Interval returns the effective poll interval
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run refreshes once immediately and then on every tick until ctx is
// cancelled. A failed tick is logged and does not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := p.sync.RefreshUnreadCount(ctx); err != nil {
		p.logger.Warn("unread count poll failed", "error", err)
	}
}
