package server

import (
	"maps"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tablero/internal/events"
)

// Metrics counts requests and observed change events
type Metrics struct {
	Requests     atomic.Int64
	ClientErrors atomic.Int64
	ServerErrors atomic.Int64

	mu      sync.Mutex
	changes map[events.EventType]int64
}

// NewMetrics creates an empty Metrics
func NewMetrics() *Metrics {
	return &Metrics{changes: map[events.EventType]int64{}}
}

func (m *Metrics) recordRequest(status int) {
	m.Requests.Add(1)
	switch {
	case status >= http.StatusInternalServerError:
		m.ServerErrors.Add(1)
	case status >= http.StatusBadRequest:
		m.ClientErrors.Add(1)
	}
}

func (m *Metrics) recordChange(t events.EventType) {
	m.mu.Lock()
	m.changes[t]++
	m.mu.Unlock()
}

// Changes returns a copy of the per-type change counts
func (m *Metrics) Changes() map[events.EventType]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.changes)
}

// handleMetrics reports request counters and, when a bus is attached,
// its delivery statistics
func (s *Server) handleMetrics(c *gin.Context) {
	body := gin.H{
		"requests":      s.metrics.Requests.Load(),
		"client_errors": s.metrics.ClientErrors.Load(),
		"server_errors": s.metrics.ServerErrors.Load(),
		"changes":       s.metrics.Changes(),
	}
	if s.bus != nil {
		body["events"] = s.bus.Metrics().Snapshot()
	}
	c.JSON(http.StatusOK, body)
}
