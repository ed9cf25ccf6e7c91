// Package finder describes how to locate an element in the remote UI tree and
// converts those descriptions to and from the flat string-map wire format.
package finder

import (
	"strconv"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Wire keys shared by finder payloads.
const (
	KeyFinderType = "finderType"
	KeyIndex      = "index"
)

// DefaultIndex is used when a payload carries no index.
const DefaultIndex = "0"

// Finder type tags.
const (
	TypeByTooltipMessage = "ByTooltipMessage"
	TypeBySemanticsLabel = "BySemanticsLabel"
	TypeByText           = "ByText"
	TypeByValueKey       = "ByValueKey"
	TypeByType           = "ByType"
	TypePageBack         = "PageBack"
	TypeDescendant       = "Descendant"
	TypeAncestor         = "Ancestor"
)

// Finder is the interface for all finder variants.
type Finder interface {
	FinderType() string
	Serialize() map[string]string
	Describe() string
}

// Deserializer turns a flat wire map back into the finder it encodes.
// Variants holding nested finders need one to decode their children.
type Deserializer interface {
	DeserializeFinder(m map[string]string) (Finder, error)
}

// indexed carries the result index shared by most variants.
// The index is kept as the string it arrived as.
type indexed struct {
	index string
}

// Index returns the result index.
func (i indexed) Index() string { return i.index }

func newIndexed(index string) indexed {
	if index == "" {
		index = DefaultIndex
	}
	return indexed{index: index}
}

func (i indexed) describeSuffix() string {
	if i.index == DefaultIndex {
		return ""
	}
	return "[" + i.index + "]"
}

func header(finderType string, i indexed) map[string]string {
	return map[string]string{
		KeyFinderType: finderType,
		KeyIndex:      i.index,
	}
}

func indexFrom(m map[string]string) indexed {
	return newIndexed(m[KeyIndex])
}

func requireKey(m map[string]string, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", core.MissingKey(key)
	}
	return v, nil
}

func quoted(field, value string) string {
	return field + "=" + strconv.Quote(value)
}
