package listener

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/state"
	"github.com/nathoo/wayfarer/types"
	"github.com/pixil98/go-testutil"
)

// fakeConn is an in-memory connection.
type fakeConn struct {
	io.Reader
	out bytes.Buffer
}

func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Config{Defs: &state.Defs{
		Game: types.GameDef{Title: "Net Game", Start: "porch", Intro: "Hello, traveller."},
		Locations: map[string]types.LocationDef{
			"porch":   {ID: "porch", Description: "A creaky porch.", Exits: map[string]string{"north": "parlour"}},
			"parlour": {ID: "parlour", Description: "A dim parlour."},
		},
	}})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return eng
}

func TestAcceptConnection(t *testing.T) {
	cm := NewConnectionManager(newEngine(t), nil, 0, 0, nil)
	conn := &fakeConn{Reader: strings.NewReader("go north\r\n/quit\r\n")}

	cm.AcceptConnection(context.Background(), conn)

	out := conn.out.String()
	if !strings.Contains(out, "Hello, traveller.\r\n") {
		t.Errorf("expected CRLF intro, got %q", out)
	}
	if !strings.Contains(out, "A dim parlour.") {
		t.Errorf("expected movement to work, got %q", out)
	}
}

func TestAcceptConnection_SessionLimit(t *testing.T) {
	cm := NewConnectionManager(newEngine(t), nil, 0, 1, nil)
	cm.sem <- struct{}{} // one session already playing

	conn := &fakeConn{Reader: strings.NewReader("look\r\n")}
	cm.AcceptConnection(context.Background(), conn)

	testutil.AssertEqual(t, "rejected", conn.out.String(), "The game is full. Please try again later.\r\n")
}

func TestAcceptConnection_SessionsAreSeparate(t *testing.T) {
	cm := NewConnectionManager(newEngine(t), nil, 0, 0, nil)

	first := &fakeConn{Reader: strings.NewReader("go north\r\n/quit\r\n")}
	cm.AcceptConnection(context.Background(), first)

	second := &fakeConn{Reader: strings.NewReader("/state\r\n/quit\r\n")}
	cm.AcceptConnection(context.Background(), second)

	if !strings.Contains(second.out.String(), "Location: porch") {
		t.Errorf("second player should start on the porch, got %q", second.out.String())
	}
}

func TestLineConn_Read(t *testing.T) {
	tests := map[string]struct {
		in          string
		byteAtATime bool
		expOut      string
	}{
		"crlf":            {in: "look\r\n", expOut: "look\n"},
		"bare cr":         {in: "look\r", expOut: "look\n"},
		"cr nul":          {in: "look\r\x00i\r\x00", expOut: "look\ni\n"},
		"lf":              {in: "look\n", expOut: "look\n"},
		"blank line kept": {in: "\r\n\r\n", expOut: "\n\n"},
		"crlf split across reads": {
			in:          "look\r\nnorth\r\n",
			byteAtATime: true,
			expOut:      "look\nnorth\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var r io.Reader = strings.NewReader(tt.in)
			if tt.byteAtATime {
				r = iotest.OneByteReader(r)
			}
			got, err := io.ReadAll(newLineConn(&fakeConn{Reader: r}))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.expOut)
		})
	}
}

func TestLineConn_Write(t *testing.T) {
	conn := &fakeConn{Reader: strings.NewReader("")}
	n, err := newLineConn(conn).Write([]byte("a\nb\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	testutil.AssertEqual(t, "reported length", n, 4)
	testutil.AssertEqual(t, "written", conn.out.String(), "a\r\nb\r\n")
}

// netConn is a fakeConn with a peer address.
type netConn struct {
	fakeConn
	addr net.Addr
}

func (c *netConn) RemoteAddr() net.Addr { return c.addr }

func TestAcceptConnection_LogsSessionAndRemote(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	cm := NewConnectionManager(newEngine(t), nil, 0, 0, logger)

	conn := &netConn{
		fakeConn: fakeConn{Reader: strings.NewReader("/quit\r\n")},
		addr:     &net.TCPAddr{IP: net.IPv4(192, 0, 2, 7), Port: 51000},
	}
	cm.AcceptConnection(context.Background(), conn)

	for _, want := range []string{"player connected", "player disconnected", "session=", "remote=192.0.2.7:51000"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("expected %q in logs:\n%s", want, logs.String())
		}
	}
}

func TestRemoteAddr(t *testing.T) {
	testutil.AssertEqual(t, "no address", remoteAddr(&fakeConn{}), "")
	testutil.AssertEqual(t, "nil address", remoteAddr(&netConn{}), "")
}
