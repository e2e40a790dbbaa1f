// Package search ties the debouncer and the geocode client into a single
// event loop per search box.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"places/internal/models"
	"places/pkg/debounce"
	"places/pkg/geocode"
)

const eventBuffer = 64

// Session owns one search box. Text changes, debouncer fires and search
// results are all handled on one goroutine, so a result can never race
// with new input.
type Session struct {
	id       string
	searcher Searcher
	listener Listener
	delay    time.Duration
	log      logrus.FieldLogger
	now      func() time.Time

	debouncer *debounce.Debouncer
	events    chan func()
	quit      chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	stopOnce  sync.Once
	started   atomic.Bool

	// loop goroutine only
	ctx    context.Context
	text   string
	seq    uint64
	latest uint64
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce overrides the quiet period (debounce.DefaultDelay).
func WithDebounce(delay time.Duration) Option {
	return func(s *Session) { s.delay = delay }
}

// WithLogger sets the session logger; the session id is added as a field.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession creates a stopped session. Call Start before feeding text.
func NewSession(id string, searcher Searcher, listener Listener, opts ...Option) *Session {
	s := &Session{
		id:       id,
		searcher: searcher,
		listener: listener,
		delay:    debounce.DefaultDelay,
		log:      logrus.StandardLogger(),
		now:      time.Now,
		events:   make(chan func(), eventBuffer),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", id)
	s.debouncer = debounce.New(s.delay, s.dispatch, s.clear, debounce.WithExecutor(s.post))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start runs the event loop until ctx is canceled or Stop is called.
func (s *Session) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.ctx = ctx
	s.cancel = cancel

	s.started.Store(true)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(s.quit)
		for {
			select {
			case <-ctx.Done():
				s.debouncer.Cancel()
				return
			case fn := <-s.events:
				fn()
			}
		}
	}()
}

// TextChanged feeds the current search-box text. It never blocks on the
// network. Text fed before Start is dropped.
func (s *Session) TextChanged(text string) {
	if !s.started.Load() {
		s.log.WithField("text", text).Warn("TextChanged before Start, dropping")
		return
	}
	s.post(func() {
		s.text = text
		s.debouncer.Changed(text)
	})
}

// Stop ends the loop and waits for in-flight searches to return. Their
// results are discarded.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.debouncer.Cancel()
		s.wg.Wait()
	})
}

// Close stops the session once every text change fed so far has been
// handled, so a final clear still reaches the listener.
func (s *Session) Close() {
	if s.started.Load() {
		s.post(s.cancel)
		<-s.quit
	}
	s.Stop()
}

func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.quit:
	}
}

// clear runs on the loop, from inside debouncer.Changed.
func (s *Session) clear() {
	s.listener.Cleared()
}

// dispatch runs on the loop, routed there by the debouncer executor.
func (s *Session) dispatch(keyword string) {
	s.seq++
	seq := s.seq
	s.latest = seq
	ctx := s.ctx

	s.log.WithFields(logrus.Fields{"keyword": keyword, "seq": seq}).Debug("Dispatching search")
	s.listener.Searching(keyword)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		places, err := s.searcher.Search(ctx, keyword)
		s.post(func() { s.deliver(seq, keyword, places, err) })
	}()
}

func (s *Session) deliver(seq uint64, keyword string, places []models.Place, err error) {
	if seq != s.latest || keyword != s.text {
		s.log.WithFields(logrus.Fields{"keyword": keyword, "seq": seq, "current": s.text}).
			Debug("Dropping stale search result")
		return
	}

	outcome := models.Outcome{
		ID:      uuid.NewString(),
		Session: s.id,
		Seq:     seq,
		Keyword: keyword,
		Places:  places,
		At:      s.now(),
	}
	if err != nil {
		outcome.Places = nil
		outcome.Err = err
		outcome.Failure = geocode.KindOf(err)
		if outcome.Failure == "" {
			outcome.Failure = "unknown"
		}
	} else if outcome.Places == nil {
		outcome.Places = []models.Place{}
	}
	s.listener.Delivered(outcome)
}
