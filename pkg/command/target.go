package command

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/flutter-driver/pkg/finder"
)

// TargetCommand is a command that acts on the element located by a finder.
type TargetCommand interface {
	Command
	Finder() finder.Finder
}

// WithTarget is the base for finder-driven commands. Its wire form is the
// command fields merged with the finder fields.
type WithTarget struct {
	Base
	finder finder.Finder
}

func newWithTarget(kind string, f finder.Finder, timeout time.Duration) WithTarget {
	return WithTarget{Base: newBase(kind, timeout), finder: f}
}

// Finder returns the target finder.
func (c WithTarget) Finder() finder.Finder { return c.finder }

// serializeWith merges command, finder and variant fields. Key namespaces
// are disjoint for every variant; an overlap is a programming error.
func (c WithTarget) serializeWith(extra map[string]string) map[string]string {
	m := c.Base.serialize()
	mergeDisjoint(m, c.finder.Serialize(), c.kind)
	mergeDisjoint(m, extra, c.kind)
	return m
}

func mergeDisjoint(dst, src map[string]string, kind string) {
	for k, v := range src {
		if _, exists := dst[k]; exists {
			panic(fmt.Sprintf("command %s: key %q serialized twice", kind, k))
		}
		dst[k] = v
	}
}

func (c WithTarget) describeTarget(detail string) string {
	s := c.finder.Describe()
	if detail != "" {
		s += " " + detail
	}
	return c.Base.describe(s)
}

func decodeTarget(m map[string]string, d finder.Deserializer, kind string) (WithTarget, error) {
	base, err := decodeBase(m, kind)
	if err != nil {
		return WithTarget{}, err
	}
	f, err := d.DeserializeFinder(m)
	if err != nil {
		return WithTarget{}, fmt.Errorf("%s target: %w", kind, err)
	}
	return WithTarget{Base: base, finder: f}, nil
}

// WaitFor waits until the finder locates a widget.
type WaitFor struct{ WithTarget }

// NewWaitFor creates a WaitFor command. A zero timeout means none.
func NewWaitFor(f finder.Finder, timeout time.Duration) *WaitFor {
	return &WaitFor{newWithTarget(KindWaitFor, f, timeout)}
}

// Serialize returns the wire form.
func (c *WaitFor) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *WaitFor) Describe() string { return c.describeTarget("") }

// WaitForAbsent waits until the finder no longer locates any widget.
type WaitForAbsent struct{ WithTarget }

// NewWaitForAbsent creates a WaitForAbsent command.
func NewWaitForAbsent(f finder.Finder, timeout time.Duration) *WaitForAbsent {
	return &WaitForAbsent{newWithTarget(KindWaitForAbsent, f, timeout)}
}

// Serialize returns the wire form.
func (c *WaitForAbsent) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *WaitForAbsent) Describe() string { return c.describeTarget("") }

// WaitForTappable waits until the located widget can receive taps.
type WaitForTappable struct{ WithTarget }

// NewWaitForTappable creates a WaitForTappable command.
func NewWaitForTappable(f finder.Finder, timeout time.Duration) *WaitForTappable {
	return &WaitForTappable{newWithTarget(KindWaitForTappable, f, timeout)}
}

// Serialize returns the wire form.
func (c *WaitForTappable) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *WaitForTappable) Describe() string { return c.describeTarget("") }

// GetSemanticsID asks for the semantics node id of the located widget.
//
// The device side requires semantics to be enabled and the finder to resolve
// to exactly one widget (or one with a semantics ancestor); violations come
// back as remote errors.
type GetSemanticsID struct{ WithTarget }

// NewGetSemanticsID creates a GetSemanticsID command.
func NewGetSemanticsID(f finder.Finder, timeout time.Duration) *GetSemanticsID {
	return &GetSemanticsID{newWithTarget(KindGetSemanticsID, f, timeout)}
}

// Serialize returns the wire form.
func (c *GetSemanticsID) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *GetSemanticsID) Describe() string { return c.describeTarget("") }

// Tap taps the located widget.
type Tap struct{ WithTarget }

// NewTap creates a Tap command.
func NewTap(f finder.Finder, timeout time.Duration) *Tap {
	return &Tap{newWithTarget(KindTap, f, timeout)}
}

// Serialize returns the wire form.
func (c *Tap) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *Tap) Describe() string { return c.describeTarget("") }

// GetText reads the text of the located widget.
type GetText struct{ WithTarget }

// NewGetText creates a GetText command.
func NewGetText(f finder.Finder, timeout time.Duration) *GetText {
	return &GetText{newWithTarget(KindGetText, f, timeout)}
}

// Serialize returns the wire form.
func (c *GetText) Serialize() map[string]string { return c.serializeWith(nil) }

// Describe returns a human-readable description.
func (c *GetText) Describe() string { return c.describeTarget("") }

func decodeWaitFor(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindWaitFor)
	if err != nil {
		return nil, err
	}
	return &WaitFor{t}, nil
}

func decodeWaitForAbsent(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindWaitForAbsent)
	if err != nil {
		return nil, err
	}
	return &WaitForAbsent{t}, nil
}

func decodeWaitForTappable(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindWaitForTappable)
	if err != nil {
		return nil, err
	}
	return &WaitForTappable{t}, nil
}

func decodeGetSemanticsID(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindGetSemanticsID)
	if err != nil {
		return nil, err
	}
	return &GetSemanticsID{t}, nil
}

func decodeTap(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindTap)
	if err != nil {
		return nil, err
	}
	return &Tap{t}, nil
}

func decodeGetText(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindGetText)
	if err != nil {
		return nil, err
	}
	return &GetText{t}, nil
}
