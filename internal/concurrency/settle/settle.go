// Package settle provides a structured settle-all join: start independent
// tasks, observe each outcome separately. One task failing never cancels a
// sibling or discards its result.
package settle

import "context"

// Task is one in-flight operation.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go launches fn on its own goroutine. The task settles when fn returns.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Wait blocks until the task settles and returns its outcome. It may be
// called any number of times.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.value, t.err
}
