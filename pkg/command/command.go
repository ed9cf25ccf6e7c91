// Package command defines the actions and queries sent to the driver
// extension, built on top of finders, and their flat-map wire form.
package command

import (
	"strconv"
	"time"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Wire keys owned by the command layer.
const (
	KeyKind    = "kind"
	KeyTimeout = "timeout"
)

// Command kinds.
const (
	KindWaitFor         = "waitFor"
	KindWaitForAbsent   = "waitForAbsent"
	KindWaitForTappable = "waitForTappable"
	KindGetSemanticsID  = "get_semantics_id"
	KindTap             = "tap"
	KindGetText         = "get_text"
	KindScroll          = "scroll"
	KindScrollIntoView  = "scrollIntoView"
	KindGetOffset       = "get_offset"
	KindEnterText       = "enter_text"
	KindRequestData     = "request_data"
	KindGetHealth       = "get_health"
)

// Command is the interface for all commands.
type Command interface {
	Kind() string
	// Timeout returns 0 when the command has no timeout.
	Timeout() time.Duration
	Serialize() map[string]string
	Describe() string
}

// Base contains the fields common to all commands.
type Base struct {
	kind    string
	timeout time.Duration
}

// newBase truncates timeout to whole milliseconds, the wire resolution.
// A positive timeout below 1ms becomes 1ms.
func newBase(kind string, timeout time.Duration) Base {
	switch {
	case timeout <= 0:
		timeout = 0
	case timeout < time.Millisecond:
		timeout = time.Millisecond
	default:
		timeout = timeout.Truncate(time.Millisecond)
	}
	return Base{kind: kind, timeout: timeout}
}

// Kind returns the command kind.
func (b Base) Kind() string { return b.kind }

// Timeout returns the command timeout, 0 if none.
func (b Base) Timeout() time.Duration { return b.timeout }

// serialize writes kind and, when set, the timeout in milliseconds.
func (b Base) serialize() map[string]string {
	m := map[string]string{KeyKind: b.kind}
	if b.timeout > 0 {
		m[KeyTimeout] = strconv.FormatInt(b.timeout.Milliseconds(), 10)
	}
	return m
}

func (b Base) describe(detail string) string {
	s := b.kind
	if detail != "" {
		s += " " + detail
	}
	if b.timeout > 0 {
		s += " (timeout " + b.timeout.String() + ")"
	}
	return s
}

func decodeBase(m map[string]string, kind string) (Base, error) {
	raw, ok := m[KeyTimeout]
	if !ok {
		return Base{kind: kind}, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return Base{}, core.ErrInvalidValue.
			WithMessagef("timeout %q is not a non-negative number of milliseconds", raw).
			WithCause(err)
	}
	return Base{kind: kind, timeout: time.Duration(ms) * time.Millisecond}, nil
}

func requireKey(m map[string]string, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", core.MissingKey(key)
	}
	return v, nil
}

func parseFloat(m map[string]string, key string) (float64, error) {
	raw, err := requireKey(m, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.ErrInvalidValue.WithMessagef("%s %q is not a number", key, raw).WithCause(err)
	}
	return v, nil
}

func parseInt(m map[string]string, key string) (int64, error) {
	raw, err := requireKey(m, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.ErrInvalidValue.WithMessagef("%s %q is not an integer", key, raw).WithCause(err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WithTimeout returns a copy of c carrying timeout, rebuilt through the
// Default registry so the concrete type is preserved.
func WithTimeout(c Command, timeout time.Duration) (Command, error) {
	m := c.Serialize()
	delete(m, KeyTimeout)
	if ms, ok := newBase(c.Kind(), timeout).serialize()[KeyTimeout]; ok {
		m[KeyTimeout] = ms
	}
	return Default.Deserialize(m)
}
