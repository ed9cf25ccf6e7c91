// Package result holds the typed responses returned by the driver extension.
package result

import (
	"encoding/json"
	"math"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Result is the interface for all command results.
type Result interface {
	ToJSON() map[string]interface{}
}

// GetSemanticsIDResult carries the semantics node id of a widget.
type GetSemanticsIDResult struct {
	ID int
}

// ToJSON returns {"id": n}.
func (r GetSemanticsIDResult) ToJSON() map[string]interface{} {
	return map[string]interface{}{"id": r.ID}
}

// GetSemanticsIDResultFromJSON decodes a GetSemanticsIDResult.
func GetSemanticsIDResultFromJSON(m map[string]interface{}) (GetSemanticsIDResult, error) {
	id, err := intField(m, "id")
	if err != nil {
		return GetSemanticsIDResult{}, err
	}
	return GetSemanticsIDResult{ID: id}, nil
}

// GetTextResult carries the text of a widget.
type GetTextResult struct {
	Text string
}

// ToJSON returns {"text": s}.
func (r GetTextResult) ToJSON() map[string]interface{} {
	return map[string]interface{}{"text": r.Text}
}

// GetTextResultFromJSON decodes a GetTextResult.
func GetTextResultFromJSON(m map[string]interface{}) (GetTextResult, error) {
	text, err := stringField(m, "text")
	if err != nil {
		return GetTextResult{}, err
	}
	return GetTextResult{Text: text}, nil
}

// GetOffsetResult carries a position in logical pixels.
type GetOffsetResult struct {
	DX float64
	DY float64
}

// ToJSON returns {"dx": x, "dy": y}.
func (r GetOffsetResult) ToJSON() map[string]interface{} {
	return map[string]interface{}{"dx": r.DX, "dy": r.DY}
}

// GetOffsetResultFromJSON decodes a GetOffsetResult.
func GetOffsetResultFromJSON(m map[string]interface{}) (GetOffsetResult, error) {
	dx, err := floatField(m, "dx")
	if err != nil {
		return GetOffsetResult{}, err
	}
	dy, err := floatField(m, "dy")
	if err != nil {
		return GetOffsetResult{}, err
	}
	return GetOffsetResult{DX: dx, DY: dy}, nil
}

// RequestDataResult carries the reply of the application's data handler.
type RequestDataResult struct {
	Message string
}

// ToJSON returns {"message": s}.
func (r RequestDataResult) ToJSON() map[string]interface{} {
	return map[string]interface{}{"message": r.Message}
}

// RequestDataResultFromJSON decodes a RequestDataResult.
func RequestDataResultFromJSON(m map[string]interface{}) (RequestDataResult, error) {
	msg, err := stringField(m, "message")
	if err != nil {
		return RequestDataResult{}, err
	}
	return RequestDataResult{Message: msg}, nil
}

// HealthStatus is the state reported by GetHealth.
type HealthStatus string

// HealthStatus values.
const (
	HealthOK  HealthStatus = "ok"
	HealthBad HealthStatus = "bad"
)

// Health carries the driver extension health.
type Health struct {
	Status HealthStatus
}

// ToJSON returns {"status": "ok"|"bad"}.
func (r Health) ToJSON() map[string]interface{} {
	return map[string]interface{}{"status": string(r.Status)}
}

// HealthFromJSON decodes a Health result.
func HealthFromJSON(m map[string]interface{}) (Health, error) {
	s, err := stringField(m, "status")
	if err != nil {
		return Health{}, err
	}
	switch status := HealthStatus(s); status {
	case HealthOK, HealthBad:
		return Health{Status: status}, nil
	}
	return Health{}, core.ErrInvalidValue.WithMessagef("unknown health status: %s", s)
}

// Empty is the result of commands that return no data.
type Empty struct{}

// ToJSON returns an empty object.
func (Empty) ToJSON() map[string]interface{} { return map[string]interface{}{} }

// Decode builds the result type produced by the given command kind.
func Decode(kind string, m map[string]interface{}) (Result, error) {
	switch kind {
	case command.KindGetSemanticsID:
		return GetSemanticsIDResultFromJSON(m)
	case command.KindGetText:
		return GetTextResultFromJSON(m)
	case command.KindGetOffset:
		return GetOffsetResultFromJSON(m)
	case command.KindRequestData:
		return RequestDataResultFromJSON(m)
	case command.KindGetHealth:
		return HealthFromJSON(m)
	case command.KindWaitFor, command.KindWaitForAbsent, command.KindWaitForTappable,
		command.KindTap, command.KindScroll, command.KindScrollIntoView, command.KindEnterText:
		return Empty{}, nil
	}
	return nil, core.ErrUnknownCommand.WithMessagef("no result type for command kind: %s", kind)
}

func field(m map[string]interface{}, key string) (interface{}, error) {
	v, ok := m[key]
	if !ok {
		return nil, core.MissingKey(key)
	}
	return v, nil
}

func stringField(m map[string]interface{}, key string) (string, error) {
	v, err := field(m, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", core.ErrInvalidValue.WithMessagef("%s: expected string, got %T", key, v)
	}
	return s, nil
}

func floatField(m map[string]interface{}, key string) (float64, error) {
	v, err := field(m, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, core.ErrInvalidValue.WithMessagef("%s: %q is not a number", key, n.String()).WithCause(err)
		}
		return f, nil
	}
	return 0, core.ErrInvalidValue.WithMessagef("%s: expected number, got %T", key, v)
}

func intField(m map[string]interface{}, key string) (int, error) {
	v, err := field(m, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, core.ErrInvalidValue.WithMessagef("%s: %q is not an integer", key, n.String()).WithCause(err)
		}
		if i < math.MinInt || i > math.MaxInt {
			return 0, core.ErrInvalidValue.WithMessagef("%s: %d is out of range", key, i)
		}
		return int(i), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, core.ErrInvalidValue.WithMessagef("%s: %v is not an integer", key, n)
		}
		if n < math.MinInt || n >= -math.MinInt {
			return 0, core.ErrInvalidValue.WithMessagef("%s: %v is out of range", key, n)
		}
		return int(n), nil
	}
	return 0, core.ErrInvalidValue.WithMessagef("%s: expected integer, got %T", key, v)
}
