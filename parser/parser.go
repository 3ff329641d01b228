package parser

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/tree"
	"github.com/0xalexb/hjarta-params/validate"
	"github.com/0xalexb/hjarta-params/variant"
)

// Parser fills parameter trees from YAML. The zero value is not usable; use
// New. A Parser holds no per-parse state and may be shared, but a single
// tree must not be parsed into concurrently.
type Parser struct {
	validator validate.Validator
	logger    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithValidator replaces the node name and namespace rules.
func WithValidator(validator validate.Validator) Option {
	return func(p *Parser) {
		if validator != nil {
			p.validator = validator
		}
	}
}

// WithLogger sets the logger used for parse diagnostics. By default the
// parser logs to slog.Default() as it is at the time of the call.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{validator: validate.Default()}

	for _, apply := range opts {
		apply(p)
	}

	return p
}

func (p *Parser) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}

	return slog.Default()
}

// ParseFile parses every document in the file at path into params.
func (p *Parser) ParseFile(path string, params *tree.Tree) error {
	if path == "" {
		return p.fail(fmt.Errorf("%w: empty file path", tree.ErrInvalidArgument), path, 0)
	}

	err := checkTree(params)
	if err != nil {
		return p.fail(err, path, 0)
	}

	file, err := os.Open(path)
	if err != nil {
		return p.fail(fmt.Errorf("opening parameter file: %w", err), path, 0)
	}

	defer func() {
		_ = file.Close()
	}()

	return p.parse(NewEventSource(file), params, path)
}

// ParseBytes parses every document in data into params.
func (p *Parser) ParseBytes(data []byte, params *tree.Tree) error {
	return p.ParseReader(bytes.NewReader(data), params)
}

// ParseReader parses every document read from r into params.
func (p *Parser) ParseReader(r io.Reader, params *tree.Tree) error {
	err := checkTree(params)
	if err != nil {
		return p.fail(err, "", 0)
	}

	return p.parse(NewEventSource(r), params, "")
}

// ParseEvents runs the engine over an arbitrary event stream.
func (p *Parser) ParseEvents(src EventSource, params *tree.Tree) error {
	err := checkTree(params)
	if err != nil {
		return p.fail(err, "", 0)
	}

	return p.parse(src, params, "")
}

func (p *Parser) parse(src EventSource, params *tree.Tree, source string) error {
	e := newEngine(params, p.validator)

	err := e.run(src)
	if err != nil {
		return p.fail(err, source, e.line)
	}

	p.log().Debug("parsed parameters",
		slog.String("file", source),
		slog.Int("nodes", params.NumNodes()),
	)

	return nil
}

// ParseValue parses yamlValue, a YAML scalar or flow sequence of scalars,
// into the parameter param of node, creating both if needed. Names are not
// validated here.
func (p *Parser) ParseValue(node, param, yamlValue string, params *tree.Tree) error {
	err := checkTree(params)
	if err != nil {
		return p.fail(err, "", 0)
	}

	switch {
	case node == "":
		return p.fail(fmt.Errorf("%w: empty node name", tree.ErrInvalidArgument), "", 0)
	case param == "":
		return p.fail(fmt.Errorf("%w: empty parameter name", tree.ErrInvalidArgument), "", 0)
	case yamlValue == "":
		return p.fail(fmt.Errorf("%w: empty value for %s", tree.ErrInvalidArgument, param), "", 0)
	}

	slot, err := params.GetValue(node, param)
	if err != nil {
		return p.fail(fmt.Errorf("adding parameter %s of %s: %w", param, node, err), "", 0)
	}

	line, err := parseValueEvents(NewEventSource(bytes.NewReader([]byte(yamlValue))), params.Allocator(), slot)
	if err != nil {
		return p.fail(err, "", line)
	}

	p.log().Debug("set parameter value",
		slog.String("node", node),
		slog.String("param", param),
		slog.String("kind", slot.Kind().String()),
	)

	return nil
}

// ParseOverride applies one "[node:]param.name:=value" rule to params.
// Without a node prefix the rule targets every node ("/**").
func (p *Parser) ParseOverride(rule string, params *tree.Tree) error {
	override, err := SplitOverride(rule)
	if err != nil {
		return p.fail(err, "", 0)
	}

	err = validateName(p.validator, override.Node)
	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", ErrInvalidOverride, err), "", 0)
	}

	return p.ParseValue(override.Node, override.Param, override.Value, params)
}

func (p *Parser) fail(err error, source string, line int) error {
	setLastError(err)

	attrs := []any{slog.String("error", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("file", source))
	}

	if line > 0 {
		attrs = append(attrs, slog.Int("line", line))
	}

	p.log().Error("failed to parse parameters", attrs...)

	return err
}

func checkTree(params *tree.Tree) error {
	if params == nil || params.Allocator() == nil {
		return fmt.Errorf("%w: parameter tree is not initialized", tree.ErrInvalidArgument)
	}

	return nil
}

// parseValueEvents is the value half of the engine: it accepts scalars and
// one level of sequence, and stores them into slot. It returns the last
// line it saw.
func parseValueEvents(src EventSource, a alloc.Allocator, slot *variant.Variant) (int, error) {
	var (
		inSeq   bool
		seqKind variant.Kind
		line    int
	)

	for {
		event, err := src.Next()
		if err != nil {
			return line, err
		}

		if event.Line > 0 {
			line = event.Line
		}

		switch event.Type {
		case StreamEnd:
			return line, nil
		case StreamStart, DocumentStart, DocumentEnd:
		case Scalar:
			err = commitValue(a, slot, event, inSeq, &seqKind, line)
			if err != nil {
				return line, err
			}
		case SequenceStart:
			if inSeq {
				return line, fmt.Errorf("%w: nested sequences are not supported at line %d", ErrGrammar, line)
			}

			inSeq = true
			seqKind = variant.KindEmpty
		case SequenceEnd:
			inSeq = false
		case MappingStart, MappingEnd:
			return line, fmt.Errorf("%w: maps are not supported in parameter values at line %d", ErrGrammar, line)
		case Alias:
			return line, fmt.Errorf("%w: will not support aliasing at line %d", ErrGrammar, line)
		case NoEvent:
			return line, fmt.Errorf("%w: received an empty event at line %d", ErrGrammar, line)
		}
	}
}

//nolint:gochecknoglobals // package level convenience API
var defaultParser = New()

// ParseFile parses the file at path into params with the default rules.
func ParseFile(path string, params *tree.Tree) error {
	return defaultParser.ParseFile(path, params)
}

// ParseBytes parses data into params with the default rules.
func ParseBytes(data []byte, params *tree.Tree) error {
	return defaultParser.ParseBytes(data, params)
}

// ParseValue sets a single parameter from a YAML value.
func ParseValue(node, param, yamlValue string, params *tree.Tree) error {
	return defaultParser.ParseValue(node, param, yamlValue, params)
}

// ParseOverride applies one "[node:]param.name:=value" rule to params.
func ParseOverride(rule string, params *tree.Tree) error {
	return defaultParser.ParseOverride(rule, params)
}
