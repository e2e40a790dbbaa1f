// Package worker runs one search session per remote search box and streams
// the delivered outcomes to a channel.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"places/internal/models"
	"places/internal/search"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("worker: closed")

// Worker routes text events to per-session search loops. A session is
// created on its first event and closed when its text is cleared.
type Worker struct {
	ctx      context.Context
	searcher search.Searcher
	delay    time.Duration
	log      logrus.FieldLogger
	out      chan *models.Outcome

	mu       sync.Mutex
	sessions map[string]*search.Session
	closed   bool
	closing  sync.WaitGroup
}

// New returns a worker whose sessions live until ctx is done. Outcomes are
// buffered up to buffer entries before session loops block.
func New(ctx context.Context, searcher search.Searcher, delay time.Duration, buffer int, log logrus.FieldLogger) *Worker {
	return &Worker{
		ctx:      ctx,
		searcher: searcher,
		delay:    delay,
		log:      log,
		out:      make(chan *models.Outcome, buffer),
		sessions: make(map[string]*search.Session),
	}
}

// Outcomes is closed by Close after every session has stopped.
func (w *Worker) Outcomes() <-chan *models.Outcome {
	return w.out
}

// Handle feeds ev to its session. It matches service.HandlerFunc.
func (w *Worker) Handle(_ context.Context, ev models.TextEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	s, ok := w.sessions[ev.Session]
	if !ok {
		if ev.Text == "" {
			return nil
		}
		s = search.NewSession(ev.Session, w.searcher, &sink{w: w, session: ev.Session},
			search.WithDebounce(w.delay), search.WithLogger(w.log))
		s.Start(w.ctx)
		w.sessions[ev.Session] = s
		w.log.WithField("session", ev.Session).Debug("session opened")
	}

	s.TextChanged(ev.Text)
	if ev.Text == "" {
		delete(w.sessions, ev.Session)
		// Close waits for in-flight searches; do not hold up other sessions.
		w.closing.Add(1)
		go func() {
			defer w.closing.Done()
			s.Close()
			w.log.WithField("session", ev.Session).Debug("session closed")
		}()
	}
	return nil
}

// Active is the number of open sessions.
func (w *Worker) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sessions)
}

// Close stops every session and closes the Outcomes channel. Pending
// dispatches are dropped.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	sessions := w.sessions
	w.sessions = nil
	w.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
	w.closing.Wait()
	close(w.out)
}

// sink is the search.Listener of one worker session.
type sink struct {
	w       *Worker
	session string
}

func (s *sink) Cleared() {}

func (s *sink) Searching(keyword string) {
	s.w.log.WithFields(logrus.Fields{"session": s.session, "keyword": keyword}).Debug("searching")
}

func (s *sink) Delivered(o models.Outcome) {
	select {
	case s.w.out <- &o:
	case <-s.w.ctx.Done():
	}
}
