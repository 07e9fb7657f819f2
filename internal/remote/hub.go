package remote

import (
	"context"
	"sync"
	"time"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

// Hub is an in-process Channel. The websocket relay serves its rooms to
// peers on other machines.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
	now   func() time.Time
}

type room struct {
	mu     sync.Mutex
	seq    int64
	log    []engine.Action
	subs   map[int]*mailbox
	nextID int
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room), now: time.Now}
}

func (h *Hub) Open(_ context.Context, code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = &room{subs: make(map[int]*mailbox)}
	}
	return nil
}

// Exists reports whether code has been opened and not dropped.
func (h *Hub) Exists(code string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.rooms[code]
	return ok
}

// Drop forgets a room and stops delivery to its subscribers.
func (h *Hub) Drop(code string) {
	h.mu.Lock()
	r, ok := h.rooms[code]
	delete(h.rooms, code)
	h.mu.Unlock()
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, mb := range r.subs {
		mb.close()
		delete(r.subs, id)
	}
}

// Rooms returns the number of open rooms.
func (h *Hub) Rooms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Seated reports whether a player already sent a setup for side in the
// room.
func (h *Hub) Seated(code string, side game.Side) bool {
	r, err := h.room(code)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.log {
		if a.Kind == engine.ActionSetup && a.Side == side {
			return true
		}
	}
	return false
}

func (h *Hub) room(code string) (*room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Publish appends a to the room log, stamping its sequence number and,
// when unset, its timestamp.
func (h *Hub) Publish(ctx context.Context, code string, a engine.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := h.room(code)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	a.Seq = r.seq
	if a.Timestamp == 0 {
		a.Timestamp = h.now().UnixMilli()
	}
	r.log = append(r.log, a)
	for _, mb := range r.subs {
		mb.push(a)
	}
	return nil
}

func (h *Hub) Subscribe(code string, fn func(engine.Action)) (func(), error) {
	r, err := h.room(code)
	if err != nil {
		return nil, err
	}
	mb := newMailbox(fn)
	r.mu.Lock()
	for _, a := range r.log {
		mb.push(a)
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = mb
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
			mb.close()
		})
	}, nil
}

// mailbox is an unbounded queue drained by its own goroutine, so a slow or
// re-entrant subscriber never blocks a publisher.
type mailbox struct {
	mu     sync.Mutex
	queue  []engine.Action
	closed bool
	wake   chan struct{}
}

func newMailbox(fn func(engine.Action)) *mailbox {
	mb := &mailbox{wake: make(chan struct{}, 1)}
	go mb.run(fn)
	return mb
}

func (mb *mailbox) push(a engine.Action) {
	mb.mu.Lock()
	if mb.closed {
		mb.mu.Unlock()
		return
	}
	mb.queue = append(mb.queue, a)
	mb.mu.Unlock()
	mb.signal()
}

func (mb *mailbox) close() {
	mb.mu.Lock()
	mb.closed = true
	mb.queue = nil
	mb.mu.Unlock()
	mb.signal()
}

func (mb *mailbox) signal() {
	select {
	case mb.wake <- struct{}{}:
	default:
	}
}

func (mb *mailbox) run(fn func(engine.Action)) {
	for range mb.wake {
		for {
			mb.mu.Lock()
			if mb.closed {
				mb.mu.Unlock()
				return
			}
			if len(mb.queue) == 0 {
				mb.mu.Unlock()
				break
			}
			a := mb.queue[0]
			mb.queue = mb.queue[1:]
			mb.mu.Unlock()
			fn(a)
		}
	}
}
