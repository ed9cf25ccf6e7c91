package finder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Key value type tags as they appear on the wire.
const (
	KeyValueTypeString = "String"
	KeyValueTypeInt    = "int"
)

// KeyValue is the value of a widget key: either a StringKey or an IntKey.
type KeyValue interface {
	KeyValueType() string
	String() string
	isKeyValue()
}

// StringKey is a string widget key.
type StringKey string

// KeyValueType returns "String".
func (StringKey) KeyValueType() string { return KeyValueTypeString }

func (k StringKey) String() string { return string(k) }

func (StringKey) isKeyValue() {}

// IntKey is an integer widget key.
type IntKey int

// KeyValueType returns "int".
func (IntKey) KeyValueType() string { return KeyValueTypeInt }

func (k IntKey) String() string { return strconv.Itoa(int(k)) }

func (IntKey) isKeyValue() {}

// KeyValueOf converts a dynamically typed value (from YAML, JSON, user input)
// into a KeyValue. Only strings and integers are accepted.
func KeyValueOf(v interface{}) (KeyValue, error) {
	switch k := v.(type) {
	case KeyValue:
		return k, nil
	case string:
		return StringKey(k), nil
	case int:
		return IntKey(k), nil
	case int8:
		return IntKey(k), nil
	case int16:
		return IntKey(k), nil
	case int32:
		return IntKey(k), nil
	case int64:
		if k > math.MaxInt || k < math.MinInt {
			return nil, core.InvalidKeyValueType(fmt.Sprintf("%T", v))
		}
		return IntKey(k), nil
	case uint:
		if k > math.MaxInt {
			return nil, core.InvalidKeyValueType(fmt.Sprintf("%T", v))
		}
		return IntKey(k), nil
	case uint8:
		return IntKey(k), nil
	case uint16:
		return IntKey(k), nil
	case uint32:
		if uint64(k) > math.MaxInt {
			return nil, core.InvalidKeyValueType(fmt.Sprintf("%T", v))
		}
		return IntKey(k), nil
	case uint64:
		if k > math.MaxInt {
			return nil, core.InvalidKeyValueType(fmt.Sprintf("%T", v))
		}
		return IntKey(k), nil
	}
	return nil, core.InvalidKeyValueType(fmt.Sprintf("%T", v))
}

// parseKeyValue reverses KeyValue.String for the given type tag.
func parseKeyValue(s, keyValueType string) (KeyValue, error) {
	switch keyValueType {
	case KeyValueTypeString:
		return StringKey(s), nil
	case KeyValueTypeInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, core.ErrInvalidValue.
				WithMessagef("keyValueString %q is not an int", s).
				WithCause(err)
		}
		return IntKey(n), nil
	}
	return nil, core.InvalidKeyValueType(keyValueType)
}
