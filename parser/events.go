package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/0xalexb/hjarta-params/scalar"
)

// EventType is the kind of a YAML parse event.
type EventType uint8

// Event types, in the order a well-formed stream can produce them.
const (
	NoEvent EventType = iota
	StreamStart
	StreamEnd
	DocumentStart
	DocumentEnd
	MappingStart
	MappingEnd
	SequenceStart
	SequenceEnd
	Scalar
	Alias
)

//nolint:gochecknoglobals // lookup table
var eventNames = [...]string{
	NoEvent:       "no event",
	StreamStart:   "stream start",
	StreamEnd:     "stream end",
	DocumentStart: "document start",
	DocumentEnd:   "document end",
	MappingStart:  "mapping start",
	MappingEnd:    "mapping end",
	SequenceStart: "sequence start",
	SequenceEnd:   "sequence end",
	Scalar:        "scalar",
	Alias:         "alias",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}

	return fmt.Sprintf("event(%d)", uint8(t))
}

// Event is one step of a YAML document walk. Value, Style and Tag are only
// set for scalars; Tag is only set when it was written explicitly.
type Event struct {
	Type  EventType
	Value string
	Style scalar.Style
	Tag   string
	Line  int
}

// EventSource yields the events of a YAML stream one at a time. After
// StreamEnd it keeps returning StreamEnd.
type EventSource interface {
	Next() (Event, error)
}

// yamlSource replays the documents decoded by yaml.v3 as events. Documents
// are decoded one at a time as the consumer reaches them.
type yamlSource struct {
	decoder *yaml.Decoder
	queue   []Event
	started bool
	done    bool
	line    int
}

// NewEventSource returns an EventSource over the YAML stream read from r.
//
//nolint:ireturn // callers consume events through the interface
func NewEventSource(r io.Reader) EventSource {
	return &yamlSource{decoder: yaml.NewDecoder(r)}
}

func (s *yamlSource) Next() (Event, error) {
	if !s.started {
		s.started = true

		return Event{Type: StreamStart, Line: 1}, nil
	}

	for len(s.queue) == 0 {
		if s.done {
			return Event{Type: StreamEnd, Line: s.line}, nil
		}

		var doc yaml.Node

		err := s.decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			s.done = true

			continue
		}

		if err != nil {
			return Event{}, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		s.queue = appendEvents(s.queue, &doc)
	}

	event := s.queue[0]
	s.queue = s.queue[1:]
	s.line = event.Line

	return event, nil
}

// appendEvents flattens node into the events a streaming parser would have
// emitted for it.
func appendEvents(events []Event, node *yaml.Node) []Event {
	switch node.Kind {
	case yaml.DocumentNode:
		events = append(events, Event{Type: DocumentStart, Line: node.Line})
		for _, child := range node.Content {
			events = appendEvents(events, child)
		}

		return append(events, Event{Type: DocumentEnd, Line: node.Line})
	case yaml.MappingNode:
		events = append(events, Event{Type: MappingStart, Line: node.Line})
		for _, child := range node.Content {
			events = appendEvents(events, child)
		}

		return append(events, Event{Type: MappingEnd, Line: lastLine(node)})
	case yaml.SequenceNode:
		events = append(events, Event{Type: SequenceStart, Line: node.Line})
		for _, child := range node.Content {
			events = appendEvents(events, child)
		}

		return append(events, Event{Type: SequenceEnd, Line: lastLine(node)})
	case yaml.ScalarNode:
		return append(events, Event{
			Type:  Scalar,
			Value: node.Value,
			Style: scalarStyle(node.Style),
			Tag:   explicitTag(node),
			Line:  node.Line,
		})
	case yaml.AliasNode:
		return append(events, Event{Type: Alias, Value: node.Value, Line: node.Line})
	}

	return append(events, Event{Type: NoEvent, Line: node.Line})
}

func lastLine(node *yaml.Node) int {
	if len(node.Content) == 0 {
		return node.Line
	}

	return lastLine(node.Content[len(node.Content)-1])
}

func scalarStyle(style yaml.Style) scalar.Style {
	switch {
	case style&yaml.SingleQuotedStyle != 0:
		return scalar.SingleQuoted
	case style&yaml.DoubleQuotedStyle != 0:
		return scalar.DoubleQuoted
	case style&yaml.LiteralStyle != 0:
		return scalar.Literal
	case style&yaml.FoldedStyle != 0:
		return scalar.Folded
	}

	return scalar.Plain
}

func explicitTag(node *yaml.Node) string {
	if node.Style&yaml.TaggedStyle == 0 {
		return ""
	}

	return node.Tag
}

// sliceSource replays a fixed list of events. It backs tests and callers
// that build event streams themselves.
type sliceSource struct {
	events []Event
	next   int
}

// NewSliceSource returns an EventSource over events. Once the list is
// exhausted it reports StreamEnd.
//
//nolint:ireturn // callers consume events through the interface
func NewSliceSource(events ...Event) EventSource {
	return &sliceSource{events: events}
}

func (s *sliceSource) Next() (Event, error) {
	if s.next >= len(s.events) {
		return Event{Type: StreamEnd}, nil
	}

	event := s.events[s.next]
	s.next++

	return event, nil
}
