// Package listener serves wayfarer sessions over the network, one engine
// session per connection.
package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

type TelnetListener struct {
	port   uint16
	cm     *ConnectionManager
	logger *slog.Logger
}

func NewTelnetListener(port uint16, cm *ConnectionManager, logger *slog.Logger) *TelnetListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &TelnetListener{
		port:   port,
		cm:     cm,
		logger: logger.With("listener", "telnet", "port", port),
	}
}

// Start serves until ctx is cancelled or the server fails. Cancelling ctx
// also hangs up every player and waits for their sessions to end.
func (l *TelnetListener) Start(ctx context.Context) error {
	sessions, hangUp := context.WithCancel(context.WithoutCancel(ctx))
	defer hangUp()

	h := &telnetHandler{
		serve:    l.cm.AcceptConnection,
		logger:   l.logger,
		sessions: sessions,
	}
	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), h)

	stopServing := context.AfterFunc(ctx, func() {
		svr.Stop()
		hangUp()
	})
	defer stopServing()

	l.logger.Info("accepting players")
	err := svr.ListenAndServe()
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("port %d is already in use (another server running?)", l.port)
	case ctx.Err() != nil:
		h.wg.Wait()
		l.logger.Info("stopped")
		return nil
	case err != nil:
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

type telnetHandler struct {
	wg       sync.WaitGroup
	serve    func(context.Context, io.ReadWriter)
	logger   *slog.Logger
	sessions context.Context
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()

	// Closing the connection unblocks a session waiting on input.
	hangUp := context.AfterFunc(h.sessions, func() { h.close(conn) })
	defer func() {
		if hangUp() {
			h.close(conn)
		}
	}()

	h.serve(h.sessions, conn)
}

func (h *telnetHandler) close(conn io.Closer) {
	if err := conn.Close(); err != nil {
		h.logger.Debug("closing connection", "error", err)
	}
}
