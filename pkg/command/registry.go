package command

import (
	"sort"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
	"github.com/devicelab-dev/flutter-driver/pkg/finder"
	"github.com/devicelab-dev/flutter-driver/pkg/logger"
)

// DecodeFunc rebuilds one command variant from its wire map.
type DecodeFunc func(m map[string]string, d finder.Deserializer) (Command, error)

// Registry dispatches command wire maps by kind. Target finders are decoded
// with the finder Deserializer it was built with.
type Registry struct {
	decoders map[string]DecodeFunc
	finders  finder.Deserializer
}

// Default decodes every command kind using finder.Default.
var Default = NewRegistry(finder.Default)

// NewRegistry creates a registry with every command variant.
func NewRegistry(finders finder.Deserializer) *Registry {
	return &Registry{
		finders: finders,
		decoders: map[string]DecodeFunc{
			KindWaitFor:         decodeWaitFor,
			KindWaitForAbsent:   decodeWaitForAbsent,
			KindWaitForTappable: decodeWaitForTappable,
			KindGetSemanticsID:  decodeGetSemanticsID,
			KindTap:             decodeTap,
			KindGetText:         decodeGetText,
			KindScroll:          decodeScroll,
			KindScrollIntoView:  decodeScrollIntoView,
			KindGetOffset:       decodeGetOffset,
			KindEnterText:       decodeEnterText,
			KindRequestData:     decodeRequestData,
			KindGetHealth:       decodeGetHealth,
		},
	}
}

// Deserialize rebuilds the command encoded by m.
func (r *Registry) Deserialize(m map[string]string) (Command, error) {
	kind, ok := m[KeyKind]
	if !ok {
		return nil, core.MissingKey(KeyKind)
	}
	decode, ok := r.decoders[kind]
	if !ok {
		return nil, core.ErrUnknownCommand.
			WithMessagef("unknown command kind: %s", kind).
			WithDetails(map[string]interface{}{"kind": kind})
	}
	logger.Debug("decoding command %s", kind)
	return decode(m, r.finders)
}

// Kinds returns the registered command kinds, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Deserialize decodes m with the Default registry.
func Deserialize(m map[string]string) (Command, error) {
	return Default.Deserialize(m)
}
