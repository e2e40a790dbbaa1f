package models

import "time"

// Outcome is the result of one dispatched search. It either carries the
// places found (possibly none) or a failure.
type Outcome struct {
	ID      string    `json:"id"`
	Session string    `json:"session,omitempty"`
	Seq     uint64    `json:"seq"`
	Keyword string    `json:"keyword"`
	Places  []Place   `json:"places"`
	Err     error     `json:"-"`
	Failure string    `json:"failure,omitempty"`
	At      time.Time `json:"at"`
}

// Failed reports whether the search did not produce a result list.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.Failure != ""
}

// Empty reports a successful search that found nothing.
func (o Outcome) Empty() bool {
	return !o.Failed() && len(o.Places) == 0
}

// TextEvent is a search-box change as carried on the worker input topic.
type TextEvent struct {
	Session string    `json:"session"`
	Text    string    `json:"text"`
	At      time.Time `json:"at,omitempty"`
}
