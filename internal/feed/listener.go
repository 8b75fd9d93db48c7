package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

// NotifyChannel is the Postgres NOTIFY channel the row-change triggers use.
const NotifyChannel = "row_changes"

type subscription struct {
	id      int
	table   string
	types   map[EventType]bool
	handler Handler
}

// Listener consumes NOTIFY payloads from Postgres and dispatches them to
// subscribers. It reconnects automatically through pq.Listener.
type Listener struct {
	pl *pq.Listener

	mu     sync.Mutex
	nextID int
	subs   []*subscription
}

// NewListener opens a dedicated listening connection and starts LISTENing on
// the row-change channel.
func NewListener(dsn string) (*Listener, error) {
	pl := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("feed: listener event %v: %v", ev, err)
		}
	})
	if err := pl.Listen(NotifyChannel); err != nil {
		pl.Close()
		return nil, err
	}
	return &Listener{pl: pl}, nil
}

// Start runs the dispatch loop until ctx is cancelled. A periodic Ping keeps
// the connection alive and forces reconnection after network drops.
func (l *Listener) Start(ctx context.Context) {
	go func() {
		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-l.pl.Notify:
				if n == nil {
					// nil notification signals a reconnect; subscribers
					// re-sync by refetching, so nothing to replay here.
					continue
				}
				var ev Event
				if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
					log.Printf("feed: malformed notify payload: %v", err)
					continue
				}
				l.dispatch(ev)
			case <-ping.C:
				if err := l.pl.Ping(); err != nil {
					log.Printf("feed: ping failed: %v", err)
				}
			}
		}
	}()
}

// Subscribe registers a handler for the given table and event types. The
// returned function removes the subscription.
func (l *Listener) Subscribe(table string, types []EventType, h Handler) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	sub := &subscription{
		id:      l.nextID,
		table:   table,
		types:   map[EventType]bool{},
		handler: h,
	}
	for _, t := range types {
		sub.types[t] = true
	}
	l.subs = append(l.subs, sub)

	id := sub.id
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Close tears down the listening connection.
func (l *Listener) Close() error { return l.pl.Close() }

func (l *Listener) dispatch(ev Event) {
	l.mu.Lock()
	handlers := make([]Handler, 0, len(l.subs))
	for _, s := range l.subs {
		if s.table == ev.Table && s.types[ev.Action] {
			handlers = append(handlers, s.handler)
		}
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
