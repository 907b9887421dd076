package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileSchema turns a declared input schema (the JSON-serializable schema a
// tool carries) into a compiled validator. Compilation happens once, at
// registration time.
func compileSchema(name string, schema any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	resource := name + ".schema.json"
	if err := compiler.AddResource(resource, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("add schema for %s: %w", name, err)
	}

	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", name, err)
	}
	return compiled, nil
}

// validateArgs checks an argument bag against a compiled schema and converts
// the validator's output into a ValidationError naming the offending fields.
func validateArgs(schema *jsonschema.Schema, args map[string]any) error {
	if schema == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	// The validator expects the shape encoding/json produces, which is what
	// the transport hands us already.
	var doc any = map[string]any(args)
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{message: err.Error()}
	}
	return &ValidationError{
		Fields:  offendingFields(ve),
		message: ve.Error(),
	}
}

// offendingFields walks the error tree and collects the top-level argument
// names the validator complained about.
func offendingFields(ve *jsonschema.ValidationError) []string {
	seen := make(map[string]bool)
	var fields []string

	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if field := topLevelField(e); field != "" && !seen[field] {
			seen[field] = true
			fields = append(fields, field)
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)

	return fields
}

func topLevelField(e *jsonschema.ValidationError) string {
	if loc := strings.TrimPrefix(e.InstanceLocation, "/"); loc != "" {
		if i := strings.Index(loc, "/"); i >= 0 {
			loc = loc[:i]
		}
		return loc
	}
	// A failed "required" keyword reports at the root; pull the property
	// name out of the message ("missing properties: 'name'").
	if strings.Contains(e.Message, "missing propert") {
		if start := strings.Index(e.Message, "'"); start >= 0 {
			rest := e.Message[start+1:]
			if end := strings.Index(rest, "'"); end >= 0 {
				return rest[:end]
			}
		}
	}
	return ""
}
