// Package publish fans delivered search outcomes out to export sinks. Sinks
// in one stage run in parallel; stages run one after another.
package publish

import (
	"context"
)

// Step exports or annotates one item. Steps in the same stage share the item
// and must not write the same fields.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that run concurrently for a single item.
type Stage[T any] struct {
	names []string
	steps []Step[T]
}

// NewStage constructs a Stage from anonymous steps.
func NewStage[T any](steps ...Step[T]) Stage[T] {
	s := Stage[T]{}
	for _, step := range steps {
		s = s.With("", step)
	}
	return s
}

// With returns a copy of s with a named step appended. The name shows up in
// failure logs.
func (s Stage[T]) With(name string, step Step[T]) Stage[T] {
	names := append(append([]string(nil), s.names...), name)
	steps := append(append([]Step[T](nil), s.steps...), step)
	return Stage[T]{names: names, steps: steps}
}

// Len is the number of steps in the stage.
func (s Stage[T]) Len() int { return len(s.steps) }
