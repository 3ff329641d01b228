package parser

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/namespace"
	"github.com/0xalexb/hjarta-params/scalar"
	"github.com/0xalexb/hjarta-params/tree"
	"github.com/0xalexb/hjarta-params/validate"
	"github.com/0xalexb/hjarta-params/variant"
)

// MaxScalarSize is the longest scalar value accepted, in bytes.
const MaxScalarSize = 256

// Node names accepted without validation.
const (
	wildcardOne  = "*"
	wildcardMany = "**"
)

type mapLevel uint8

const (
	levelUninitialized mapLevel = iota
	levelNodeName
	levelParameters
)

// engine is the state of one document walk.
type engine struct {
	tree      *tree.Tree
	alloc     alloc.Allocator
	ns        *namespace.Tracker
	validator validate.Validator

	level       mapLevel
	depth       int
	paramsDepth int
	// one entry per mapping opened in parameters mode, set when the mapping
	// pushed a parameter namespace segment
	scopes []bool

	isNewMap bool
	isKey    bool
	isSeq    bool
	seqKind  variant.Kind

	nodeIdx  int
	paramIdx int
	// paramCreated is set when the last parameter key added its slot
	paramCreated bool
	// nsKey is the full name of the key whose mapping is open and has not
	// received a key yet
	nsKey string
	line  int
}

func newEngine(params *tree.Tree, validator validate.Validator) *engine {
	return &engine{
		tree:      params,
		alloc:     params.Allocator(),
		ns:        namespace.NewTracker(params.Allocator()),
		validator: validator,
		level:     levelNodeName,
		isKey:     true,
	}
}

// run consumes src until StreamEnd or the first error. The namespace
// tracker is released either way.
func (e *engine) run(src EventSource) error {
	defer e.ns.Release()

	for {
		event, err := src.Next()
		if err != nil {
			return err
		}

		if event.Line > 0 {
			e.line = event.Line
		}

		done, err := e.handle(event)
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

func (e *engine) handle(event Event) (bool, error) {
	switch event.Type {
	case StreamEnd:
		return true, nil
	case StreamStart, DocumentStart, DocumentEnd:
		return false, nil
	case Scalar:
		return false, e.scalar(event)
	case SequenceStart:
		return false, e.sequenceStart()
	case SequenceEnd:
		e.isSeq = false
		e.isKey = true

		return false, nil
	case MappingStart:
		if e.isSeq {
			return false, e.grammarf("maps are not supported inside sequences at line %d", e.line)
		}

		return false, e.mappingStart()
	case MappingEnd:
		return false, e.mappingEnd()
	case Alias:
		return false, e.grammarf("will not support aliasing at line %d", e.line)
	case NoEvent:
		return false, e.grammarf("received an empty event at line %d", e.line)
	}

	return false, e.grammarf("unknown YAML event %s at line %d", event.Type, e.line)
}

func (e *engine) scalar(event Event) error {
	if e.isKey {
		err := e.key(event.Value)
		if err != nil {
			return err
		}

		e.isKey = false

		return nil
	}

	if e.level < levelParameters || e.tree.NumNodes() == 0 || e.tree.Node(e.nodeIdx).Len() == 0 {
		return e.grammarf("cannot have a value before %s at line %d", tree.ParametersKey, e.line)
	}

	err := e.value(event)
	if err != nil {
		return err
	}

	if !e.isSeq {
		e.isKey = true
	}

	return nil
}

func (e *engine) sequenceStart() error {
	if e.isKey {
		return e.grammarf("sequences cannot be key at line %d", e.line)
	}

	if e.level < levelParameters {
		return e.grammarf("sequences can only be values and not keys in params, error at line %d", e.line)
	}

	if e.isSeq {
		return e.grammarf("nested sequences are not supported at line %d", e.line)
	}

	e.isSeq = true
	e.seqKind = variant.KindEmpty

	return nil
}

func (e *engine) mappingStart() error {
	e.depth++
	e.isNewMap = true
	e.isKey = true

	if e.level != levelParameters {
		return nil
	}

	e.scopes = append(e.scopes, false)

	// the mapping right under the parameters key holds plain parameter names
	if e.depth-(e.ns.Count(namespace.Node)+1) == 2 {
		e.isNewMap = false

		return nil
	}

	// the key that opened this mapping is a namespace segment, not a parameter
	node := e.tree.Node(e.nodeIdx)
	if e.paramIdx >= node.Len() {
		return e.grammarf("internal error creating param namespace at line %d", e.line)
	}

	e.nsKey = node.Name(e.paramIdx)

	if e.paramCreated {
		node.Remove(e.paramIdx)
		e.paramCreated = false
	}

	return nil
}

func (e *engine) mappingEnd() error {
	switch e.level {
	case levelParameters:
		pushed := false
		if n := len(e.scopes); n > 0 {
			pushed = e.scopes[n-1]
			e.scopes = e.scopes[:n-1]
		}

		if pushed {
			err := e.ns.Pop(namespace.Parameter)
			if err != nil {
				return fmt.Errorf("removing parameter namespace at line %d: %w", e.line, err)
			}
		}

		if e.depth <= e.paramsDepth {
			e.level = levelNodeName
			e.scopes = e.scopes[:0]
		}
	case levelNodeName:
		if e.depth == e.ns.Count(namespace.Node)+1 {
			err := e.ns.Pop(namespace.Node)
			if err != nil {
				return fmt.Errorf("removing node namespace at line %d: %w", e.line, err)
			}
		}
	case levelUninitialized:
	}

	e.depth--
	e.isNewMap = false

	return nil
}

func (e *engine) key(value string) error {
	if value == "" {
		return e.grammarf("empty key at line %d", e.line)
	}

	switch e.level {
	case levelNodeName:
		return e.nodeKey(value)
	case levelParameters:
		return e.parameterKey(value)
	case levelUninitialized:
	}

	return e.grammarf("uninitialized map level at line %d", e.line)
}

func (e *engine) nodeKey(value string) error {
	if value != tree.ParametersKey {
		err := validateName(e.validator, value)
		if err != nil {
			return fmt.Errorf("%w at line %d", err, e.line)
		}

		err = e.ns.Push(value, namespace.Node)
		if err != nil {
			return fmt.Errorf("adding node namespace at line %d: %w", e.line, err)
		}

		return nil
	}

	if e.ns.Count(namespace.Node) == 0 {
		return e.grammarf("there are no node names before %s at line %d", tree.ParametersKey, e.line)
	}

	// the last pushed segment was the node name, not a namespace
	idx, err := e.tree.FindOrCreateNode(e.ns.Value(namespace.Node))
	if err != nil {
		return fmt.Errorf("adding node at line %d: %w", e.line, err)
	}

	err = e.ns.Pop(namespace.Node)
	if err != nil {
		return fmt.Errorf("removing node name at line %d: %w", e.line, err)
	}

	e.nodeIdx = idx
	e.level = levelParameters
	e.paramsDepth = e.depth + 1
	e.scopes = e.scopes[:0]

	return nil
}

func (e *engine) parameterKey(value string) error {
	node := e.tree.Node(e.nodeIdx)

	if e.isNewMap {
		count := e.ns.Count(namespace.Parameter) + 1

		err := e.ns.Replace(e.nsKey, count, namespace.Parameter)
		if err != nil {
			return fmt.Errorf("adding parameter namespace at line %d: %w", e.line, err)
		}

		if n := len(e.scopes); n > 0 {
			e.scopes[n-1] = true
		}

		e.isNewMap = false
	}

	name := value
	if e.ns.Count(namespace.Parameter) > 0 {
		name = e.ns.Value(namespace.Parameter) + namespace.Parameter.Separator() + value
	}

	before := node.Len()

	idx, err := node.FindOrCreateParameter(name)
	if err != nil {
		return fmt.Errorf("adding parameter %q at line %d: %w", name, e.line, err)
	}

	e.paramIdx = idx
	e.paramCreated = node.Len() > before

	return nil
}

func (e *engine) value(event Event) error {
	return commitValue(e.alloc, e.tree.Node(e.nodeIdx).Value(e.paramIdx), event, e.isSeq, &e.seqKind, e.line)
}

// commitValue infers the type of a scalar event and stores it in slot,
// either replacing the slot's value or, inside a sequence, appending to it.
func commitValue(a alloc.Allocator, slot *variant.Variant, event Event, inSeq bool, seqKind *variant.Kind, line int) error {
	if len(event.Value) > MaxScalarSize {
		return fmt.Errorf("%w: scalar value at line %d is bigger than %d bytes", ErrGrammar, line, MaxScalarSize)
	}

	if event.Value == "" {
		return fmt.Errorf("%w: no value at line %d", ErrGrammar, line)
	}

	inferred, err := scalar.Infer(a, event.Value, event.Style, event.Tag)
	if err != nil {
		return fmt.Errorf("error parsing value %s at line %d: %w", event.Value, line, err)
	}

	if !inSeq {
		slot.Assign(a, &inferred)

		return nil
	}

	switch *seqKind {
	case variant.KindEmpty:
		*seqKind = inferred.Kind()
		slot.Dispose(a)
	case inferred.Kind():
	default:
		kind := inferred.Kind()
		inferred.Dispose(a)

		return fmt.Errorf("%w: sequence should be of same type. Value type '%s' do not belong at line %d",
			ErrGrammar, kind, line)
	}

	err = slot.Append(a, &inferred)
	if err != nil {
		inferred.Dispose(a)

		return fmt.Errorf("appending value at line %d: %w", line, err)
	}

	return nil
}

func (e *engine) grammarf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrGrammar}, args...)...)
}

// concreteNamespace makes ns absolute and drops wildcard tokens, which
// match any namespace and are not subject to the naming rules.
func concreteNamespace(ns string) string {
	trimmed := strings.TrimPrefix(ns, "/")
	if trimmed == "" {
		return "/"
	}

	tokens := strings.Split(trimmed, "/")
	kept := tokens[:0]

	for _, token := range tokens {
		if token == wildcardOne || token == wildcardMany {
			continue
		}

		kept = append(kept, token)
	}

	return "/" + strings.Join(kept, "/")
}

// validateName checks a node name key, which may carry a namespace
// ("ns/inner/node"). The wildcards "*" and "**" are accepted as a whole
// name or as the node part without consulting the validator.
func validateName(validator validate.Validator, name string) error {
	if name == wildcardOne || name == wildcardMany {
		return nil
	}

	nodeName := name

	if sep := strings.LastIndexByte(name, '/'); sep >= 0 {
		ns := concreteNamespace(name[:sep])

		valid, reason := validator.ValidateNamespace(ns)
		if !valid {
			return fmt.Errorf("%w: namespace not valid: %s, result: %s", ErrInvalidName, ns, reason)
		}

		nodeName = name[sep+1:]
	}

	if nodeName == wildcardOne || nodeName == wildcardMany {
		return nil
	}

	valid, reason := validator.ValidateNodeName(nodeName)
	if !valid {
		return fmt.Errorf("%w: node name not valid: %s, result: %s", ErrInvalidName, nodeName, reason)
	}

	return nil
}
