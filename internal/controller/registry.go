package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
)

// mailboxSize bounds undelivered events per panel; older ones are kept and
// newer ones dropped once full.
const mailboxSize = 8

var ErrNotRegistered = errors.New("controller: no mailbox for id")

// Event is a form outcome delivered to whoever is waiting on a panel.
type Event struct {
	Type    string
	Mode    string
	Message string
	Token   string
}

// Registry holds one buffered mailbox per mounted panel so that long-polling
// clients receive outcomes that happened between polls.
type Registry struct {
	mu        sync.RWMutex
	mailboxes map[string]chan Event
}

func NewRegistry() *Registry {
	return &Registry{mailboxes: make(map[string]chan Event)}
}

// Register opens the mailbox for id. Registering twice keeps the first.
func (r *Registry) Register(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mailboxes[id]; exists {
		return
	}
	r.mailboxes[id] = make(chan Event, mailboxSize)
	logging.DebugLog("Registry: opened mailbox [%s]", id)
}

// Notify delivers ev without blocking. It reports whether ev was queued.
func (r *Registry) Notify(id string, ev Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, exists := r.mailboxes[id]
	if !exists {
		logging.DebugLog("Registry: notify for unknown mailbox [%s]", id)
		return false
	}

	select {
	case ch <- ev:
		return true
	default:
		logging.WarnLog("Registry: mailbox full, dropping %s event [%s]", ev.Type, id)
		return false
	}
}

// Wait returns the next event for id, or ctx's error. A mailbox deleted
// while waiting yields ErrNotRegistered.
func (r *Registry) Wait(ctx context.Context, id string) (Event, error) {
	r.mu.RLock()
	ch, exists := r.mailboxes[id]
	r.mu.RUnlock()
	if !exists {
		return Event{}, ErrNotRegistered
	}

	select {
	case ev, ok := <-ch:
		if !ok {
			return Event{}, ErrNotRegistered
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Delete closes the mailbox for id, waking any waiter.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, exists := r.mailboxes[id]
	if !exists {
		return
	}
	close(ch)
	delete(r.mailboxes, id)
	logging.DebugLog("Registry: closed mailbox [%s]", id)
}

// Count returns the current number of open mailboxes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mailboxes)
}
