package validation

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// RequestSchema declares the accepted shape of each part of a request.
// A nil schema leaves that part unchecked.
type RequestSchema struct {
	Params *gojsonschema.Schema
	Query  *gojsonschema.Schema
	Body   *gojsonschema.Schema
}

// TaskSchemas holds the request schemas of the task endpoints
type TaskSchemas struct {
	ListTasks  RequestSchema
	GetTask    RequestSchema
	UpdateTask RequestSchema
}

// LoadSchema compiles an embedded JSON schema by file name
func LoadSchema(name string) (*gojsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create schema %s: %w", name, err)
	}
	return schema, nil
}

// LoadTaskSchemas compiles every schema used by the task routes
func LoadTaskSchemas() (*TaskSchemas, error) {
	params, err := LoadSchema("task_params.json")
	if err != nil {
		return nil, err
	}
	query, err := LoadSchema("list_tasks_query.json")
	if err != nil {
		return nil, err
	}
	body, err := LoadSchema("update_task_body.json")
	if err != nil {
		return nil, err
	}

	return &TaskSchemas{
		ListTasks:  RequestSchema{Query: query},
		GetTask:    RequestSchema{Params: params},
		UpdateTask: RequestSchema{Params: params, Body: body},
	}, nil
}

// ValidateDocument validates a document against schema and returns one
// message per violation
func ValidateDocument(schema *gojsonschema.Schema, document gojsonschema.JSONLoader) ([]string, error) {
	result, err := schema.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("failed to validate: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}
