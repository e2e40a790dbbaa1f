package publish

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Pipeline applies its stages to every item read from a channel. Step
// errors are logged and never stop the item or the pipeline.
type Pipeline[T any] struct {
	stages []Stage[T]
	log    logrus.FieldLogger
}

// NewPipeline constructs a Pipeline that logs through log.
func NewPipeline[T any](log logrus.FieldLogger, stages ...Stage[T]) *Pipeline[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline[T]{stages: stages, log: log}
}

// Process consumes in until it is closed. Each stage is a barrier: all of its
// steps finish before the next stage starts. It returns the number of items
// processed and the number of failed steps.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) (items, failures int) {
	for item := range in {
		items++
		failures += p.apply(ctx, item)
	}
	return items, failures
}

func (p *Pipeline[T]) apply(ctx context.Context, item *T) int {
	var (
		mu       sync.Mutex
		failures int
	)
	for i, stage := range p.stages {
		var wg sync.WaitGroup
		for j, step := range stage.steps {
			wg.Add(1)
			go func(name string, step Step[T]) {
				defer wg.Done()
				if err := step(ctx, item); err != nil {
					p.log.WithFields(logrus.Fields{
						"stage": i,
						"step":  name,
						"error": err,
					}).Error("publish step failed")
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}(stage.names[j], step)
		}
		wg.Wait()
	}
	return failures
}
