package command

import (
	"strconv"
	"time"

	"github.com/devicelab-dev/flutter-driver/pkg/finder"
)

// EnterText types text into the currently focused text field.
type EnterText struct {
	Base
	text string
}

// NewEnterText creates an EnterText command.
func NewEnterText(text string, timeout time.Duration) *EnterText {
	return &EnterText{Base: newBase(KindEnterText, timeout), text: text}
}

// Text returns the text to enter.
func (c *EnterText) Text() string { return c.text }

// Serialize returns the wire form.
func (c *EnterText) Serialize() map[string]string {
	m := c.serialize()
	m["text"] = c.text
	return m
}

// Describe returns a human-readable description.
func (c *EnterText) Describe() string { return c.describe(strconv.Quote(c.text)) }

func decodeEnterText(m map[string]string, _ finder.Deserializer) (Command, error) {
	base, err := decodeBase(m, KindEnterText)
	if err != nil {
		return nil, err
	}
	text, err := requireKey(m, "text")
	if err != nil {
		return nil, err
	}
	return &EnterText{Base: base, text: text}, nil
}

// RequestData sends a message to the application's data handler.
type RequestData struct {
	Base
	message string
}

// NewRequestData creates a RequestData command.
func NewRequestData(message string, timeout time.Duration) *RequestData {
	return &RequestData{Base: newBase(KindRequestData, timeout), message: message}
}

// Message returns the message passed to the handler.
func (c *RequestData) Message() string { return c.message }

// Serialize returns the wire form. An empty message is omitted.
func (c *RequestData) Serialize() map[string]string {
	m := c.serialize()
	if c.message != "" {
		m["message"] = c.message
	}
	return m
}

// Describe returns a human-readable description.
func (c *RequestData) Describe() string {
	if c.message == "" {
		return c.describe("")
	}
	return c.describe(strconv.Quote(c.message))
}

func decodeRequestData(m map[string]string, _ finder.Deserializer) (Command, error) {
	base, err := decodeBase(m, KindRequestData)
	if err != nil {
		return nil, err
	}
	return &RequestData{Base: base, message: m["message"]}, nil
}

// GetHealth asks whether the driver extension is responsive.
type GetHealth struct {
	Base
}

// NewGetHealth creates a GetHealth command.
func NewGetHealth(timeout time.Duration) *GetHealth {
	return &GetHealth{Base: newBase(KindGetHealth, timeout)}
}

// Serialize returns the wire form.
func (c *GetHealth) Serialize() map[string]string { return c.serialize() }

// Describe returns a human-readable description.
func (c *GetHealth) Describe() string { return c.describe("") }

func decodeGetHealth(m map[string]string, _ finder.Deserializer) (Command, error) {
	base, err := decodeBase(m, KindGetHealth)
	if err != nil {
		return nil, err
	}
	return &GetHealth{Base: base}, nil
}
