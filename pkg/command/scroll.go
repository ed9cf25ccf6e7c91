package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
	"github.com/devicelab-dev/flutter-driver/pkg/finder"
)

// Scroll drags the located widget by (dx, dy) over duration, emitting
// frequency move events per second.
type Scroll struct {
	WithTarget
	dx        float64
	dy        float64
	duration  time.Duration
	frequency int
}

// NewScroll creates a Scroll command.
func NewScroll(f finder.Finder, dx, dy float64, duration time.Duration, frequency int, timeout time.Duration) *Scroll {
	return &Scroll{
		WithTarget: newWithTarget(KindScroll, f, timeout),
		dx:         dx,
		dy:         dy,
		duration:   duration,
		frequency:  frequency,
	}
}

// DX returns the horizontal offset.
func (c *Scroll) DX() float64 { return c.dx }

// DY returns the vertical offset.
func (c *Scroll) DY() float64 { return c.dy }

// Duration returns the gesture duration.
func (c *Scroll) Duration() time.Duration { return c.duration }

// Frequency returns the move events per second.
func (c *Scroll) Frequency() int { return c.frequency }

// Serialize returns the wire form. duration is in microseconds.
func (c *Scroll) Serialize() map[string]string {
	return c.serializeWith(map[string]string{
		"dx":        formatFloat(c.dx),
		"dy":        formatFloat(c.dy),
		"duration":  strconv.FormatInt(c.duration.Microseconds(), 10),
		"frequency": strconv.Itoa(c.frequency),
	})
}

// Describe returns a human-readable description.
func (c *Scroll) Describe() string {
	return c.describeTarget(fmt.Sprintf("by (%s, %s) over %s", formatFloat(c.dx), formatFloat(c.dy), c.duration))
}

func decodeScroll(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindScroll)
	if err != nil {
		return nil, err
	}
	dx, err := parseFloat(m, "dx")
	if err != nil {
		return nil, err
	}
	dy, err := parseFloat(m, "dy")
	if err != nil {
		return nil, err
	}
	micros, err := parseInt(m, "duration")
	if err != nil {
		return nil, err
	}
	frequency, err := parseInt(m, "frequency")
	if err != nil {
		return nil, err
	}
	return &Scroll{
		WithTarget: t,
		dx:         dx,
		dy:         dy,
		duration:   time.Duration(micros) * time.Microsecond,
		frequency:  int(frequency),
	}, nil
}

// ScrollIntoView scrolls the enclosing scrollable until the located widget
// is visible. Alignment 0.0 puts it at the leading edge, 1.0 at the trailing.
type ScrollIntoView struct {
	WithTarget
	alignment float64
}

// NewScrollIntoView creates a ScrollIntoView command.
func NewScrollIntoView(f finder.Finder, alignment float64, timeout time.Duration) *ScrollIntoView {
	return &ScrollIntoView{WithTarget: newWithTarget(KindScrollIntoView, f, timeout), alignment: alignment}
}

// Alignment returns the requested alignment.
func (c *ScrollIntoView) Alignment() float64 { return c.alignment }

// Serialize returns the wire form.
func (c *ScrollIntoView) Serialize() map[string]string {
	return c.serializeWith(map[string]string{"alignment": formatFloat(c.alignment)})
}

// Describe returns a human-readable description.
func (c *ScrollIntoView) Describe() string {
	return c.describeTarget("alignment " + formatFloat(c.alignment))
}

func decodeScrollIntoView(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindScrollIntoView)
	if err != nil {
		return nil, err
	}
	c := &ScrollIntoView{WithTarget: t}
	if _, ok := m["alignment"]; ok {
		if c.alignment, err = parseFloat(m, "alignment"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// OffsetType selects which point of the widget GetOffset reports.
type OffsetType string

// OffsetType values.
const (
	OffsetTopLeft     OffsetType = "topLeft"
	OffsetTopRight    OffsetType = "topRight"
	OffsetBottomLeft  OffsetType = "bottomLeft"
	OffsetBottomRight OffsetType = "bottomRight"
	OffsetCenter      OffsetType = "center"
)

// ParseOffsetType validates an offset type name.
func ParseOffsetType(s string) (OffsetType, error) {
	switch t := OffsetType(s); t {
	case OffsetTopLeft, OffsetTopRight, OffsetBottomLeft, OffsetBottomRight, OffsetCenter:
		return t, nil
	}
	return "", core.ErrInvalidValue.WithMessagef("unknown offset type: %s", s)
}

// GetOffset asks for the position of a point of the located widget.
type GetOffset struct {
	WithTarget
	offsetType OffsetType
}

// NewGetOffset creates a GetOffset command.
func NewGetOffset(f finder.Finder, offsetType OffsetType, timeout time.Duration) (*GetOffset, error) {
	if _, err := ParseOffsetType(string(offsetType)); err != nil {
		return nil, err
	}
	return &GetOffset{WithTarget: newWithTarget(KindGetOffset, f, timeout), offsetType: offsetType}, nil
}

// OffsetType returns the requested point.
func (c *GetOffset) OffsetType() OffsetType { return c.offsetType }

// Serialize returns the wire form.
func (c *GetOffset) Serialize() map[string]string {
	return c.serializeWith(map[string]string{"offsetType": string(c.offsetType)})
}

// Describe returns a human-readable description.
func (c *GetOffset) Describe() string { return c.describeTarget(string(c.offsetType)) }

func decodeGetOffset(m map[string]string, d finder.Deserializer) (Command, error) {
	t, err := decodeTarget(m, d, KindGetOffset)
	if err != nil {
		return nil, err
	}
	raw, err := requireKey(m, "offsetType")
	if err != nil {
		return nil, err
	}
	offsetType, err := ParseOffsetType(raw)
	if err != nil {
		return nil, err
	}
	return &GetOffset{WithTarget: t, offsetType: offsetType}, nil
}
