package plan

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationError aggregates every schema violation found in one document.
// A failing document is fatal to the current operation; it is never passed
// downstream or persisted.
type ValidationError struct {
	Document string // "planning-input" | "planning-output"
	Issues   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed schema validation: %s", e.Document, strings.Join(e.Issues, "; "))
}

// SchemaValidator validates planning documents against the fixed v1
// schemas. It is constructed once and injected; it holds no mutable state
// and is safe for concurrent use.
type SchemaValidator struct {
	input  *jsonschema.Schema
	output *jsonschema.Schema
}

// NewSchemaValidator compiles the embedded schemas.
func NewSchemaValidator() (*SchemaValidator, error) {
	input, err := compileSchema("schemas/input.v1.json")
	if err != nil {
		return nil, err
	}
	output, err := compileSchema("schemas/output.v1.json")
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{input: input, output: output}, nil
}

func compileSchema(path string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", path, err)
	}
	schema, err := compiler.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", path, err)
	}
	return schema, nil
}

// ValidateInput checks a planning input document.
func (v *SchemaValidator) ValidateInput(input *PlanningInput) error {
	return validateDoc(v.input, input, "planning-input")
}

// ValidateOutput checks a planning output document.
func (v *SchemaValidator) ValidateOutput(output *PlanningOutput) error {
	return validateDoc(v.output, output, "planning-output")
}

func validateDoc(schema *jsonschema.Schema, doc interface{}, name string) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	var instance interface{}
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	err = schema.Validate(instance)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	// collect every failing instance path, not just the first
	basic := ve.BasicOutput()
	issues := make([]string, 0, len(basic.Errors))
	for _, b := range basic.Errors {
		if b.Error == "" {
			continue
		}
		loc := b.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		issues = append(issues, fmt.Sprintf("%s: %s", loc, b.Error))
	}
	if len(issues) == 0 {
		issues = append(issues, ve.Error())
	}
	return &ValidationError{Document: name, Issues: issues}
}
