// Package script parses YAML command scripts into driver commands.
//
// A script is a sequence of steps. Each step is either a bare command name
// or a single-key mapping from command name to its parameters:
//
//	- waitFor:
//	    key: email_field
//	    timeout: 3000
//	- tap: Login
//	- enterText: hello
//	- getHealth
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/finder"
)

// ParseError represents a parsing error with location info.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error // Underlying protocol error, if any
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ParseError) Unwrap() error { return e.Err }

// StepType is the script name of a command.
type StepType string

// Step type constants.
const (
	StepWaitFor         StepType = "waitFor"
	StepWaitForAbsent   StepType = "waitForAbsent"
	StepWaitForTappable StepType = "waitForTappable"
	StepGetSemanticsID  StepType = "getSemanticsId"
	StepTap             StepType = "tap"
	StepGetText         StepType = "getText"
	StepScroll          StepType = "scroll"
	StepScrollIntoView  StepType = "scrollIntoView"
	StepGetOffset       StepType = "getOffset"
	StepEnterText       StepType = "enterText"
	StepRequestData     StepType = "requestData"
	StepGetHealth       StepType = "getHealth"
)

// stepOptions holds the non-finder parameters a step may carry.
type stepOptions struct {
	Timeout    int     `yaml:"timeout"` // ms
	Alignment  float64 `yaml:"alignment"`
	DX         float64 `yaml:"dx"`
	DY         float64 `yaml:"dy"`
	DurationMs int     `yaml:"durationMs"`
	Frequency  int     `yaml:"frequency"`
	OffsetType string  `yaml:"offsetType"`
	Text       string  `yaml:"text"`
	Message    string  `yaml:"message"`
}

func (o stepOptions) timeout() time.Duration {
	return time.Duration(o.Timeout) * time.Millisecond
}

// ParseFile parses a single YAML command script.
func ParseFile(path string) ([]command.Command, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided script file
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses YAML script content.
func Parse(data []byte, sourcePath string) ([]command.Command, error) {
	var rawSteps []yaml.Node
	if err := yaml.Unmarshal(data, &rawSteps); err != nil {
		return nil, &ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("invalid steps: %v", err),
		}
	}
	if len(rawSteps) == 0 {
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    1,
			Message: "empty script",
		}
	}

	cmds := make([]command.Command, 0, len(rawSteps))
	for i := range rawSteps {
		cmd, err := parseStep(&rawSteps[i], sourcePath)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func parseStep(node *yaml.Node, sourcePath string) (command.Command, error) {
	// Handle scalar nodes like "- getHealth" (no colon, no params)
	if node.Kind == yaml.ScalarNode {
		if !isStepType(node.Value) {
			return nil, &ParseError{
				Path:    sourcePath,
				Line:    node.Line,
				Message: fmt.Sprintf("unknown step type: %s", node.Value),
			}
		}
		return decodeStep(StepType(node.Value), &yaml.Node{Kind: yaml.MappingNode, Line: node.Line}, sourcePath)
	}

	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    node.Line,
			Message: "step must be a single-key mapping or command name",
		}
	}

	key := node.Content[0].Value
	if !isStepType(key) {
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    node.Line,
			Message: fmt.Sprintf("unknown step type: %s", key),
		}
	}
	return decodeStep(StepType(key), node.Content[1], sourcePath)
}

func isStepType(key string) bool {
	switch StepType(key) {
	case StepWaitFor, StepWaitForAbsent, StepWaitForTappable, StepGetSemanticsID,
		StepTap, StepGetText, StepScroll, StepScrollIntoView, StepGetOffset,
		StepEnterText, StepRequestData, StepGetHealth:
		return true
	}
	return false
}

//nolint:gocyclo
func decodeStep(stepType StepType, valueNode *yaml.Node, sourcePath string) (command.Command, error) {
	var opts stepOptions
	if valueNode.Kind == yaml.MappingNode {
		if err := valueNode.Decode(&opts); err != nil {
			return nil, wrapParseError(sourcePath, valueNode.Line, err)
		}
	}
	if opts.Timeout < 0 {
		return nil, &ParseError{Path: sourcePath, Line: valueNode.Line, Message: "timeout must not be negative"}
	}

	switch stepType {
	case StepEnterText:
		if valueNode.Kind == yaml.ScalarNode {
			opts.Text = valueNode.Value
		}
		return command.NewEnterText(opts.Text, opts.timeout()), nil

	case StepRequestData:
		if valueNode.Kind == yaml.ScalarNode {
			opts.Message = valueNode.Value
		}
		return command.NewRequestData(opts.Message, opts.timeout()), nil

	case StepGetHealth:
		return command.NewGetHealth(opts.timeout()), nil
	}

	f, err := parseFinder(valueNode, sourcePath)
	if err != nil {
		return nil, err
	}

	switch stepType {
	case StepWaitFor:
		return command.NewWaitFor(f, opts.timeout()), nil
	case StepWaitForAbsent:
		return command.NewWaitForAbsent(f, opts.timeout()), nil
	case StepWaitForTappable:
		return command.NewWaitForTappable(f, opts.timeout()), nil
	case StepGetSemanticsID:
		return command.NewGetSemanticsID(f, opts.timeout()), nil
	case StepTap:
		return command.NewTap(f, opts.timeout()), nil
	case StepGetText:
		return command.NewGetText(f, opts.timeout()), nil
	case StepScroll:
		duration := time.Duration(opts.DurationMs) * time.Millisecond
		return command.NewScroll(f, opts.DX, opts.DY, duration, opts.Frequency, opts.timeout()), nil
	case StepScrollIntoView:
		return command.NewScrollIntoView(f, opts.Alignment, opts.timeout()), nil
	case StepGetOffset:
		offsetType := command.OffsetType(opts.OffsetType)
		if offsetType == "" {
			offsetType = command.OffsetCenter
		}
		c, err := command.NewGetOffset(f, offsetType, opts.timeout())
		if err != nil {
			return nil, protocolParseError(sourcePath, valueNode.Line, err)
		}
		return c, nil
	}

	return nil, &ParseError{
		Path:    sourcePath,
		Line:    valueNode.Line,
		Message: fmt.Sprintf("unknown step type: %s", stepType),
	}
}

// finderRaw is the YAML shape of a finder. Exactly one selector is set.
type finderRaw struct {
	Text       *string      `yaml:"text"`
	Tooltip    *string      `yaml:"tooltip"`
	Label      *string      `yaml:"label"`
	Regexp     bool         `yaml:"regexp"`
	Key        yaml.Node    `yaml:"key"`
	Type       *string      `yaml:"type"`
	PageBack   bool         `yaml:"pageBack"`
	Descendant *relationRaw `yaml:"descendant"`
	Ancestor   *relationRaw `yaml:"ancestor"`
	Index      string       `yaml:"index"`
}

type relationRaw struct {
	Of             yaml.Node `yaml:"of"`
	Matching       yaml.Node `yaml:"matching"`
	MatchRoot      bool      `yaml:"matchRoot"`
	FirstMatchOnly bool      `yaml:"firstMatchOnly"`
	Index          string    `yaml:"index"`
}

func (r *finderRaw) selectors() []string {
	var set []string
	if r.Text != nil {
		set = append(set, "text")
	}
	if r.Tooltip != nil {
		set = append(set, "tooltip")
	}
	if r.Label != nil {
		set = append(set, "label")
	}
	if r.Key.Kind != 0 {
		set = append(set, "key")
	}
	if r.Type != nil {
		set = append(set, "type")
	}
	if r.PageBack {
		set = append(set, "pageBack")
	}
	if r.Descendant != nil {
		set = append(set, "descendant")
	}
	if r.Ancestor != nil {
		set = append(set, "ancestor")
	}
	return set
}

// parseFinder builds a finder from a YAML node. A scalar is shorthand for text.
func parseFinder(node *yaml.Node, sourcePath string) (finder.Finder, error) {
	if node.Kind == yaml.ScalarNode {
		return finder.NewByText(node.Value, ""), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: sourcePath, Line: node.Line, Message: "finder must be a mapping or text"}
	}

	var raw finderRaw
	if err := node.Decode(&raw); err != nil {
		return nil, wrapParseError(sourcePath, node.Line, err)
	}

	selectors := raw.selectors()
	switch len(selectors) {
	case 0:
		return nil, &ParseError{Path: sourcePath, Line: node.Line, Message: "no finder given"}
	case 1:
	default:
		return nil, &ParseError{
			Path:    sourcePath,
			Line:    node.Line,
			Message: "multiple finders given: " + strings.Join(selectors, ", "),
		}
	}

	switch selectors[0] {
	case "text":
		return finder.NewByText(*raw.Text, raw.Index), nil
	case "tooltip":
		return finder.NewByTooltipMessage(*raw.Tooltip, raw.Index), nil
	case "type":
		return finder.NewByType(*raw.Type, raw.Index), nil
	case "pageBack":
		return finder.NewPageBack(), nil
	case "label":
		label := finder.LiteralLabel(*raw.Label)
		if raw.Regexp {
			var err error
			if label, err = finder.PatternLabel(*raw.Label); err != nil {
				return nil, protocolParseError(sourcePath, node.Line, err)
			}
		}
		return finder.NewBySemanticsLabel(label, raw.Index), nil
	case "key":
		var value interface{}
		if err := raw.Key.Decode(&value); err != nil {
			return nil, wrapParseError(sourcePath, raw.Key.Line, err)
		}
		f, err := finder.NewByValueKeyOf(value, raw.Index)
		if err != nil {
			return nil, protocolParseError(sourcePath, raw.Key.Line, err)
		}
		return f, nil
	case "descendant":
		of, matching, err := parseRelation(raw.Descendant, node, sourcePath)
		if err != nil {
			return nil, err
		}
		return finder.NewDescendant(of, matching, raw.Descendant.MatchRoot, raw.Descendant.FirstMatchOnly, raw.Descendant.Index), nil
	default:
		of, matching, err := parseRelation(raw.Ancestor, node, sourcePath)
		if err != nil {
			return nil, err
		}
		return finder.NewAncestor(of, matching, raw.Ancestor.MatchRoot, raw.Ancestor.FirstMatchOnly, raw.Ancestor.Index), nil
	}
}

func parseRelation(r *relationRaw, node *yaml.Node, sourcePath string) (finder.Finder, finder.Finder, error) {
	if r.Of.Kind == 0 || r.Matching.Kind == 0 {
		return nil, nil, &ParseError{Path: sourcePath, Line: node.Line, Message: "descendant/ancestor requires of and matching"}
	}
	of, err := parseFinder(&r.Of, sourcePath)
	if err != nil {
		return nil, nil, err
	}
	matching, err := parseFinder(&r.Matching, sourcePath)
	if err != nil {
		return nil, nil, err
	}
	return of, matching, nil
}

func wrapParseError(path string, line int, err error) error {
	return &ParseError{
		Path:    path,
		Line:    line,
		Message: err.Error(),
	}
}

func protocolParseError(path string, line int, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{
		Path:    path,
		Line:    line,
		Message: err.Error(),
		Err:     err,
	}
}
