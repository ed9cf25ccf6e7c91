package finder

// ByText finds widgets whose text equals the given string.
type ByText struct {
	indexed
	text string
}

// NewByText creates a ByText finder. An empty index means "0".
func NewByText(text, index string) *ByText {
	return &ByText{indexed: newIndexed(index), text: text}
}

// Text returns the text to match.
func (f *ByText) Text() string { return f.text }

// FinderType returns "ByText".
func (f *ByText) FinderType() string { return TypeByText }

// Serialize returns the wire form.
func (f *ByText) Serialize() map[string]string {
	m := header(TypeByText, f.indexed)
	m["text"] = f.text
	return m
}

// Describe returns a human-readable description.
func (f *ByText) Describe() string { return quoted("text", f.text) + f.describeSuffix() }

func decodeByText(m map[string]string, _ Deserializer) (Finder, error) {
	text, err := requireKey(m, "text")
	if err != nil {
		return nil, err
	}
	return &ByText{indexed: indexFrom(m), text: text}, nil
}

// ByTooltipMessage finds tooltips with the given message.
type ByTooltipMessage struct {
	indexed
	text string
}

// NewByTooltipMessage creates a ByTooltipMessage finder.
func NewByTooltipMessage(text, index string) *ByTooltipMessage {
	return &ByTooltipMessage{indexed: newIndexed(index), text: text}
}

// Text returns the tooltip message.
func (f *ByTooltipMessage) Text() string { return f.text }

// FinderType returns "ByTooltipMessage".
func (f *ByTooltipMessage) FinderType() string { return TypeByTooltipMessage }

// Serialize returns the wire form.
func (f *ByTooltipMessage) Serialize() map[string]string {
	m := header(TypeByTooltipMessage, f.indexed)
	m["text"] = f.text
	return m
}

// Describe returns a human-readable description.
func (f *ByTooltipMessage) Describe() string {
	return quoted("tooltip", f.text) + f.describeSuffix()
}

func decodeByTooltipMessage(m map[string]string, _ Deserializer) (Finder, error) {
	text, err := requireKey(m, "text")
	if err != nil {
		return nil, err
	}
	return &ByTooltipMessage{indexed: indexFrom(m), text: text}, nil
}

// ByType finds widgets by their runtime type name, e.g. "ListView".
type ByType struct {
	indexed
	typeName string
}

// NewByType creates a ByType finder.
func NewByType(typeName, index string) *ByType {
	return &ByType{indexed: newIndexed(index), typeName: typeName}
}

// TypeName returns the widget type name.
func (f *ByType) TypeName() string { return f.typeName }

// FinderType returns "ByType".
func (f *ByType) FinderType() string { return TypeByType }

// Serialize returns the wire form.
func (f *ByType) Serialize() map[string]string {
	m := header(TypeByType, f.indexed)
	m["type"] = f.typeName
	return m
}

// Describe returns a human-readable description.
func (f *ByType) Describe() string { return quoted("type", f.typeName) + f.describeSuffix() }

func decodeByType(m map[string]string, _ Deserializer) (Finder, error) {
	typeName, err := requireKey(m, "type")
	if err != nil {
		return nil, err
	}
	return &ByType{indexed: indexFrom(m), typeName: typeName}, nil
}

// PageBack finds the back button of the current page.
type PageBack struct{}

// NewPageBack creates a PageBack finder.
func NewPageBack() *PageBack { return &PageBack{} }

// FinderType returns "PageBack".
func (f *PageBack) FinderType() string { return TypePageBack }

// Serialize returns the wire form.
func (f *PageBack) Serialize() map[string]string {
	return map[string]string{KeyFinderType: TypePageBack}
}

// Describe returns a human-readable description.
func (f *PageBack) Describe() string { return "pageBack" }

func decodePageBack(map[string]string, Deserializer) (Finder, error) {
	return &PageBack{}, nil
}
