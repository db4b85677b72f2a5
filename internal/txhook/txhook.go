// Package txhook queues callbacks that must run only after a database
// transaction commits, such as order notifications.
package txhook

import "context"

// Hooks collects post-commit callbacks for a single unit of work. Not
// safe for concurrent use; each request builds its own Hooks value.
type Hooks struct {
	fns []func(context.Context)
}

// OnCommit registers fn to run once the surrounding transaction has
// committed.
func (h *Hooks) OnCommit(fn func(context.Context)) {
	h.fns = append(h.fns, fn)
}

// Drain runs the registered callbacks in registration order and clears
// the queue.
func (h *Hooks) Drain(ctx context.Context) {
	fns := h.fns
	h.fns = nil
	for _, fn := range fns {
		fn(ctx)
	}
}

// Discard drops the registered callbacks without running them, for the
// rollback path.
func (h *Hooks) Discard() {
	h.fns = nil
}

// Len returns the number of pending callbacks.
func (h *Hooks) Len() int {
	return len(h.fns)
}
