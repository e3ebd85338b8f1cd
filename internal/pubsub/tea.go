package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Wait returns a command that blocks until the next event on ch and yields
// it as the message. It yields nil once ctx is done or ch is closed.
func Wait[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener feeds a broker subscription into a Bubble Tea program, one event
// per command. Call Next again after handling each event.
type Listener[T any] struct {
	ctx    context.Context
	events <-chan Event[T]
}

// NewListener subscribes to b for as long as ctx lives.
func NewListener[T any](ctx context.Context, b *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, events: b.Subscribe(ctx)}
}

// Next waits for the following event. A nil listener returns a nil command,
// which Bubble Tea ignores.
func (l *Listener[T]) Next() tea.Cmd {
	if l == nil {
		return nil
	}
	return Wait(l.ctx, l.events)
}
