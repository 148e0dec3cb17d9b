// Package tools is the fixed catalogue of named Coda operations offered to an agent runtime.  Each
// tool takes a snake_case JSON object of parameters and returns the typed record of the operation
// it wraps.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/invopop/jsonschema"
	"golang.org/x/exp/maps"

	"github.com/toothbrush/coda-tools/coda"
)

// Tool is one entry of the catalogue.  Schema is the JSON schema of the parameter object.
type Tool struct {
	Name        string
	Description string
	Schema      json.RawMessage

	call func(ctx context.Context, args json.RawMessage) (any, error)
}

// Call decodes args and runs the tool.
func (t Tool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return t.call(ctx, args)
}

type Catalogue struct {
	tools map[string]Tool
}

// New builds the catalogue on top of api.  Tool names are unique; registering one twice is a
// programming error and panics.
func New(api *coda.API) *Catalogue {
	c := &Catalogue{tools: map[string]Tool{}}

	groups := [][]Tool{
		docTools(api),
		pageTools(api),
		tableTools(api),
		rowTools(api),
		formulaTools(api),
	}
	for _, group := range groups {
		for _, t := range group {
			if _, dup := c.tools[t.Name]; dup {
				panic(fmt.Sprintf("tools: duplicate tool name %q", t.Name))
			}
			c.tools[t.Name] = t
		}
	}

	return c
}

// Tools returns every tool, sorted by name.
func (c *Catalogue) Tools() []Tool {
	names := maps.Keys(c.tools)
	sort.Strings(names)

	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, c.tools[name])
	}
	return out
}

func (c *Catalogue) Lookup(name string) (Tool, bool) {
	t, ok := c.tools[name]
	return t, ok
}

// Call runs the named tool with a JSON object of parameters.  An empty args means no parameters.
func (c *Catalogue) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("tools: unknown tool %q", name)
	}
	return t.Call(ctx, args)
}

// defaulter is implemented by parameter structs with non-zero defaults.  The defaults are in place
// before the arguments are decoded over them.
type defaulter interface {
	setDefaults()
}

// newTool wires a handler taking a parameter struct P into a Tool, deriving its schema from P.
func newTool[P any](name, description string, handler func(ctx context.Context, params P) (any, error)) Tool {
	return Tool{
		Name:        name,
		Description: description,
		Schema:      schemaFor[P](),
		call: func(ctx context.Context, args json.RawMessage) (any, error) {
			params, err := decodeParams[P](name, args)
			if err != nil {
				return nil, err
			}
			return handler(ctx, params)
		},
	}
}

func decodeParams[P any](name string, args json.RawMessage) (P, error) {
	var params P
	if d, ok := any(&params).(defaulter); ok {
		d.setDefaults()
	}

	trimmed := bytes.TrimSpace(args)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&params); err != nil {
			return params, &coda.ValidationError{Op: name, Err: err}
		}
	}

	if v, ok := any(params).(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return params, &coda.ValidationError{Op: name, Err: err}
		}
	}

	return params, nil
}

var reflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
	Anonymous:      true,
}

func schemaFor[P any]() json.RawMessage {
	s := reflector.Reflect(new(P))
	s.Version = ""
	s.ID = ""

	out, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("tools: couldn't marshal schema for %T: %v", *new(P), err))
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
