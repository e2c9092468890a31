package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/nathoo/wayfarer/cli"
	"github.com/nathoo/wayfarer/engine"
)

// ConnectionManager runs one game session per accepted connection.
type ConnectionManager struct {
	eng    *engine.Engine
	slots  cli.SlotLister
	width  int
	logger *slog.Logger
	sem    chan struct{} // nil means unlimited
}

// NewConnectionManager serves eng. slots may be nil to disable saving; a
// maxSessions of 0 means no limit.
func NewConnectionManager(eng *engine.Engine, slots cli.SlotLister, width, maxSessions int, logger *slog.Logger) *ConnectionManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &ConnectionManager{
		eng:    eng,
		slots:  slots,
		width:  width,
		logger: logger,
	}
	if maxSessions > 0 {
		m.sem = make(chan struct{}, maxSessions)
	}
	return m
}

// AcceptConnection plays a session on conn until the player leaves, the
// connection drops or ctx is cancelled.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	rw := newLineConn(conn)
	id := uuid.NewString()
	logger := m.logger.With("session", id, "remote", remoteAddr(conn))

	if m.sem != nil {
		select {
		case m.sem <- struct{}{}:
			defer func() { <-m.sem }()
		default:
			fmt.Fprintln(rw, "The game is full. Please try again later.")
			logger.WarnContext(ctx, "rejected connection", "reason", "session limit", "limit", cap(m.sem))
			return
		}
	}

	start := time.Now()
	logger.InfoContext(ctx, "player connected")
	defer func() {
		logger.InfoContext(ctx, "player disconnected", "duration", time.Since(start).Round(time.Second))
	}()

	c := &cli.CLI{
		Engine:    m.eng,
		SessionID: id,
		Slots:     m.slots,
		In:        rw,
		Out:       rw,
		Width:     m.width,
	}
	c.Run(ctx)
}

// remoteAddr returns the peer address of conn, or "" when it has none.
func remoteAddr(conn io.ReadWriter) string {
	if a, ok := conn.(interface{ RemoteAddr() net.Addr }); ok && a.RemoteAddr() != nil {
		return a.RemoteAddr().String()
	}
	return ""
}
