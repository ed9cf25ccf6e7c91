package finder

import "github.com/devicelab-dev/flutter-driver/pkg/core"

// ByValueKey finds the widget carrying a ValueKey with the given value.
type ByValueKey struct {
	indexed
	key KeyValue
}

// NewByValueKey creates a ByValueKey finder. key must be a StringKey or IntKey.
func NewByValueKey(key KeyValue, index string) (*ByValueKey, error) {
	if key == nil {
		return nil, core.InvalidKeyValueType("<nil>")
	}
	return &ByValueKey{indexed: newIndexed(index), key: key}, nil
}

// NewByValueKeyOf validates a dynamically typed key before building the finder.
func NewByValueKeyOf(key interface{}, index string) (*ByValueKey, error) {
	kv, err := KeyValueOf(key)
	if err != nil {
		return nil, err
	}
	return NewByValueKey(kv, index)
}

// Key returns the key value.
func (f *ByValueKey) Key() KeyValue { return f.key }

// KeyValueString returns the stringified key.
func (f *ByValueKey) KeyValueString() string { return f.key.String() }

// KeyValueType returns the key type tag ("String" or "int").
func (f *ByValueKey) KeyValueType() string { return f.key.KeyValueType() }

// FinderType returns "ByValueKey".
func (f *ByValueKey) FinderType() string { return TypeByValueKey }

// Serialize returns the wire form.
func (f *ByValueKey) Serialize() map[string]string {
	m := header(TypeByValueKey, f.indexed)
	m["keyValueString"] = f.key.String()
	m["keyValueType"] = f.key.KeyValueType()
	return m
}

// Describe returns a human-readable description.
func (f *ByValueKey) Describe() string {
	if f.key.KeyValueType() == KeyValueTypeInt {
		return "key=" + f.key.String() + f.describeSuffix()
	}
	return quoted("key", f.key.String()) + f.describeSuffix()
}

func decodeByValueKey(m map[string]string, _ Deserializer) (Finder, error) {
	// The type tag is checked first so an unknown tag reports the type error
	// even when the value is absent.
	keyValueType, err := requireKey(m, "keyValueType")
	if err != nil {
		return nil, err
	}
	if keyValueType != KeyValueTypeString && keyValueType != KeyValueTypeInt {
		return nil, core.InvalidKeyValueType(keyValueType)
	}

	raw, err := requireKey(m, "keyValueString")
	if err != nil {
		return nil, err
	}
	key, err := parseKeyValue(raw, keyValueType)
	if err != nil {
		return nil, err
	}
	return &ByValueKey{indexed: indexFrom(m), key: key}, nil
}
