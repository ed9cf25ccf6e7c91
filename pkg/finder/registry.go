package finder

import (
	"sort"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
	"github.com/devicelab-dev/flutter-driver/pkg/logger"
)

// DecodeFunc rebuilds one finder variant from its wire map.
type DecodeFunc func(m map[string]string, d Deserializer) (Finder, error)

// Registry dispatches wire maps to the decoder registered for their finderType.
// It is populated once by NewRegistry and never modified afterwards.
type Registry struct {
	decoders map[string]DecodeFunc
}

// Default is the process-wide registry of every finder variant.
var Default = NewRegistry()

// NewRegistry creates a registry with every finder variant.
func NewRegistry() *Registry {
	return &Registry{
		decoders: map[string]DecodeFunc{
			TypeByTooltipMessage: decodeByTooltipMessage,
			TypeBySemanticsLabel: decodeBySemanticsLabel,
			TypeByText:           decodeByText,
			TypeByValueKey:       decodeByValueKey,
			TypeByType:           decodeByType,
			TypePageBack:         decodePageBack,
			TypeDescendant:       decodeDescendant,
			TypeAncestor:         decodeAncestor,
		},
	}
}

// DeserializeFinder implements Deserializer. Nested finders are decoded
// through the same registry.
func (r *Registry) DeserializeFinder(m map[string]string) (Finder, error) {
	finderType, ok := m[KeyFinderType]
	if !ok {
		return nil, core.MissingKey(KeyFinderType)
	}
	decode, ok := r.decoders[finderType]
	if !ok {
		return nil, core.ErrUnknownFinderType.
			WithMessagef("unknown finder type: %s", finderType).
			WithDetails(map[string]interface{}{"finderType": finderType})
	}
	logger.Debug("decoding finder %s", finderType)
	return decode(m, r)
}

// FinderTypes returns the registered finder type tags, sorted.
func (r *Registry) FinderTypes() []string {
	types := make([]string, 0, len(r.decoders))
	for t := range r.decoders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Deserialize decodes m with the Default registry.
func Deserialize(m map[string]string) (Finder, error) {
	return Default.DeserializeFinder(m)
}
