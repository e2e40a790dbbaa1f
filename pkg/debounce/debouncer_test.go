package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu         sync.Mutex
	dispatched []string
	clears     int
	fired      chan string
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan string, 16)}
}

func (r *recorder) dispatch(keyword string) {
	r.mu.Lock()
	r.dispatched = append(r.dispatched, keyword)
	r.mu.Unlock()
	r.fired <- keyword
}

func (r *recorder) clear() {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.dispatched...), r.clears
}

func TestDebouncer_BurstDispatchesLatestOnce(t *testing.T) {
	rec := newRecorder()
	d := New(DefaultDelay, rec.dispatch, rec.clear)

	start := time.Now()
	for _, text := range []string{"a", "al", "ala"} {
		d.Changed(text)
		time.Sleep(200 * time.Millisecond)
	}
	lastChange := start.Add(400 * time.Millisecond)

	select {
	case kw := <-rec.fired:
		assert.Equal(t, "ala", kw)
		assert.GreaterOrEqual(t, time.Since(lastChange), 900*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("no dispatch within the quiet period")
	}

	time.Sleep(1100*time.Millisecond - time.Since(lastChange))
	dispatched, clears := rec.snapshot()
	assert.Equal(t, []string{"ala"}, dispatched)
	assert.Zero(t, clears)

	_, armed := d.Pending()
	assert.False(t, armed)
}

func TestDebouncer_EmptyTextClearsWithoutDispatch(t *testing.T) {
	rec := newRecorder()
	d := New(DefaultDelay, rec.dispatch, rec.clear)

	d.Changed("alamo")
	time.Sleep(300 * time.Millisecond)
	d.Changed("")

	// clear is synchronous
	_, clears := rec.snapshot()
	assert.Equal(t, 1, clears)

	time.Sleep(1200 * time.Millisecond)
	dispatched, _ := rec.snapshot()
	assert.Empty(t, dispatched)
}

func TestDebouncer_PendingState(t *testing.T) {
	d := New(time.Hour, nil, nil)

	_, armed := d.Pending()
	assert.False(t, armed)

	d.Changed("aus")
	d.Changed("austin")
	kw, armed := d.Pending()
	assert.True(t, armed)
	assert.Equal(t, "austin", kw)

	d.Changed("")
	_, armed = d.Pending()
	assert.False(t, armed)
}

func TestDebouncer_RestartsQuietPeriod(t *testing.T) {
	rec := newRecorder()
	d := New(100*time.Millisecond, rec.dispatch, rec.clear)

	// keep typing for longer than one delay; nothing may fire meanwhile
	for i := 0; i < 6; i++ {
		d.Changed(string(rune('a' + i)))
		time.Sleep(40 * time.Millisecond)
	}
	dispatched, _ := rec.snapshot()
	assert.Empty(t, dispatched)

	select {
	case kw := <-rec.fired:
		assert.Equal(t, "f", kw)
	case <-time.After(time.Second):
		t.Fatal("no dispatch")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	rec := newRecorder()
	d := New(30*time.Millisecond, rec.dispatch, rec.clear)

	d.Changed("alamo")
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	dispatched, clears := rec.snapshot()
	assert.Empty(t, dispatched)
	assert.Zero(t, clears)
}

func TestDebouncer_ExecutorCheckSeesLaterChange(t *testing.T) {
	// Hold timer callbacks until released, like an event loop busy with
	// an earlier event.
	queued := make(chan func(), 4)
	var dispatched atomic.Int32
	d := New(10*time.Millisecond, func(string) { dispatched.Add(1) }, nil,
		WithExecutor(func(fn func()) { queued <- fn }))

	d.Changed("a")
	var stale func()
	select {
	case stale = <-queued:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	// The loop processes a newer change before the stale callback.
	d.Changed("ab")
	stale()
	assert.Zero(t, dispatched.Load())

	select {
	case fresh := <-queued:
		fresh()
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	require.EqualValues(t, 1, dispatched.Load())
}
