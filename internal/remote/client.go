package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// WSChannel is a Channel backed by a relay on another host. It keeps one
// connection per room.
type WSChannel struct {
	base   string
	dialer *websocket.Dialer

	mu    sync.Mutex
	rooms map[string]*peerConn
}

// NewWSChannel returns a channel talking to the relay at base, for example
// "ws://relay.example:8080".
func NewWSChannel(base string) *WSChannel {
	return &WSChannel{
		base:   strings.TrimRight(base, "/"),
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		rooms:  make(map[string]*peerConn),
	}
}

type peerConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex

	mu      sync.Mutex
	subs    map[int]*mailbox
	nextID  int
	backlog []engine.Action
	closed  bool
}

func canonical(code string) string {
	if n, ok := keys.NormalizeRoomCode(code); ok {
		return n
	}
	return code
}

func (w *WSChannel) roomURL(code string, create bool) string {
	u := w.base + constants.RouteWSRoomPattern + url.PathEscape(code)
	if create {
		u += "?" + QueryCreate + "=1"
	}
	return u
}

func (w *WSChannel) conn(ctx context.Context, code string, create bool) (*peerConn, error) {
	code = canonical(code)
	w.mu.Lock()
	defer w.mu.Unlock()
	if pc, ok := w.rooms[code]; ok && !pc.isClosed() {
		return pc, nil
	}
	conn, resp, err := w.dialer.DialContext(ctx, w.roomURL(code, create), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	pc := &peerConn{conn: conn, subs: make(map[int]*mailbox)}
	w.rooms[code] = pc
	go pc.read(code)
	return pc, nil
}

func (w *WSChannel) Open(ctx context.Context, code string) error {
	_, err := w.conn(ctx, code, true)
	return err
}

func (w *WSChannel) Publish(ctx context.Context, code string, a engine.Action) error {
	pc, err := w.conn(ctx, code, false)
	if err != nil {
		return err
	}
	pc.wmu.Lock()
	defer pc.wmu.Unlock()
	if dl, ok := ctx.Deadline(); ok {
		_ = pc.conn.SetWriteDeadline(dl)
		defer pc.conn.SetWriteDeadline(time.Time{})
	}
	if err := pc.conn.WriteJSON(a); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Subscribe attaches fn to the room connection. Actions that arrived before
// the first subscriber are handed to it first.
func (w *WSChannel) Subscribe(code string, fn func(engine.Action)) (func(), error) {
	code = canonical(code)
	pc, err := w.conn(context.Background(), code, false)
	if err != nil {
		return nil, err
	}
	mb := newMailbox(fn)
	pc.mu.Lock()
	for _, a := range pc.backlog {
		mb.push(a)
	}
	pc.backlog = nil
	id := pc.nextID
	pc.nextID++
	pc.subs[id] = mb
	pc.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mb.close()
			pc.mu.Lock()
			delete(pc.subs, id)
			empty := len(pc.subs) == 0
			pc.mu.Unlock()
			if empty {
				w.mu.Lock()
				if w.rooms[code] == pc {
					delete(w.rooms, code)
				}
				w.mu.Unlock()
				pc.close()
			}
		})
	}, nil
}

// Close drops every room connection.
func (w *WSChannel) Close() {
	w.mu.Lock()
	rooms := w.rooms
	w.rooms = make(map[string]*peerConn)
	w.mu.Unlock()
	for _, pc := range rooms {
		pc.close()
	}
}

func (pc *peerConn) isClosed() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.closed
}

func (pc *peerConn) close() {
	pc.mu.Lock()
	pc.closed = true
	pc.mu.Unlock()
	pc.wmu.Lock()
	_ = pc.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	pc.wmu.Unlock()
	_ = pc.conn.Close()
}

func (pc *peerConn) read(code string) {
	for {
		var a engine.Action
		if err := pc.conn.ReadJSON(&a); err != nil {
			if !pc.isClosed() {
				logging.Warn("relay connection lost", logging.Fields{constants.LogFieldRoomCode: code, "error": err.Error()})
			}
			pc.mu.Lock()
			pc.closed = true
			pc.mu.Unlock()
			return
		}
		pc.mu.Lock()
		if len(pc.subs) == 0 {
			pc.backlog = append(pc.backlog, a)
		}
		for _, mb := range pc.subs {
			mb.push(a)
		}
		pc.mu.Unlock()
	}
}
