package game

import (
	"errors"
	"sync"
	"time"
)

var errConnClosed = errors.New("connection closed")

// recordingSink captures everything sent to one player so tests can
// inspect broadcasts and notices.
type recordingSink struct {
	mu   sync.Mutex
	msgs []ServerMessage
}

func (r *recordingSink) Send(msg ServerMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSink) messages() []ServerMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ServerMessage, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recordingSink) lastOfType(t string) (ServerMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Type == t {
			return r.msgs[i], true
		}
	}
	return ServerMessage{}, false
}

func (r *recordingSink) notices() []*Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Notice
	for _, m := range r.msgs {
		if m.Type == msgNotice {
			if n, ok := m.Data.(*Notice); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// fakeTicker is a PeriodicTickerChannelCreator driven by the test.
type fakeTicker struct {
	ch chan time.Time
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) Create(d time.Duration) <-chan time.Time {
	return f.ch
}

// fakeConn scripts a NetworkSession: reads are fed through a channel,
// writes are recorded.
type fakeConn struct {
	mu      sync.Mutex
	reads   chan []byte
	written [][]byte
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan []byte, 16)}
}

func (c *fakeConn) Read() ([]byte, error) {
	data, ok := <-c.reads
	if !ok {
		return nil, errConnClosed
	}
	return data, nil
}

func (c *fakeConn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, data)
	return nil
}

func (c *fakeConn) Ping() error { return nil }

func (c *fakeConn) Close(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// testNow is a fixed instant so timer math is reproducible.
func testNow() time.Time { return time.UnixMilli(1_700_000_000_000) }

// newTestRoom gives a lobby room with a deterministic palette pick.
func newTestRoom() *Room {
	return NewRoom("1234", DefaultTuning(), func(n int) int { return 0 })
}

// addTestPlayer joins a named player at the given unix-ms instant.
func addTestPlayer(r *Room, id string, atMs int64) *Player {
	p := NewPlayer(id, id, &recordingSink{})
	r.addPlayer(p, time.UnixMilli(atMs))
	return p
}

// newTestService pins the clock and randomness so ids and times are
// reproducible.
func newTestService(now time.Time) *Service {
	s := NewService()
	s.now = func() time.Time { return now }
	return s
}
