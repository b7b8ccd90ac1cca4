// Package authgate defers actions that need an admin PIN until the PIN is
// accepted. The gate never knows what the action means.
package authgate

import (
	"context"
	"errors"
	"sync"
)

var ErrNothingPending = errors.New("no action is awaiting authorization")

// ActionKind tags what is waiting behind the gate.
type ActionKind string

const (
	ActionNone       ActionKind = ""
	ActionRemoveItem ActionKind = "remove_item"
	ActionVoidSale   ActionKind = "void_sale"
	ActionClearCart  ActionKind = "clear_cart"
)

// PendingAction describes the deferred action. Target is the cart line or
// sale id it applies to, empty for a clear.
type PendingAction struct {
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target,omitempty"`
}

// Continuation runs the deferred action once authorized.
type Continuation func(ctx context.Context) error

// Gate holds at most one pending action. A new request replaces the previous
// one, which is dropped without running.
type Gate struct {
	mu      sync.Mutex
	pending PendingAction
	run     Continuation
}

func New() *Gate {
	return &Gate{}
}

// Require parks run behind the gate and returns the pending descriptor.
func (g *Gate) Require(action PendingAction, run Continuation) PendingAction {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = action
	g.run = run
	return action
}

// Pending returns the waiting action, or ok=false when the gate is idle.
func (g *Gate) Pending() (PendingAction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending, g.run != nil
}

// Approve runs the waiting continuation and clears the gate. The gate is
// cleared even when the continuation fails.
func (g *Gate) Approve(ctx context.Context) (PendingAction, error) {
	g.mu.Lock()
	action, run := g.pending, g.run
	g.pending, g.run = PendingAction{}, nil
	g.mu.Unlock()

	if run == nil {
		return PendingAction{}, ErrNothingPending
	}
	return action, run(ctx)
}

// Dismiss drops the waiting action without running it.
func (g *Gate) Dismiss() (PendingAction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	action, ok := g.pending, g.run != nil
	g.pending, g.run = PendingAction{}, nil
	return action, ok
}
