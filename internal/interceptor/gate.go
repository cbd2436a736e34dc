package interceptor

import "context"

// readyGate is a one-shot asynchronous gate: it settles exactly once,
// either resolved or failed, and every waiter observes the same outcome.
type readyGate struct {
	done chan struct{}
	err  error
}

func newReadyGate() *readyGate {
	return &readyGate{done: make(chan struct{})}
}

// resolve settles the gate successfully. Must be called at most once.
func (g *readyGate) resolve() {
	close(g.done)
}

// fail settles the gate with err. Must be called at most once.
func (g *readyGate) fail(err error) {
	g.err = err
	close(g.done)
}

// wait suspends until the gate settles or ctx is done, returning the
// gate's terminal error if it failed.
func (g *readyGate) wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
