package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const baseURL = "https://property-viewer.local/"

// Payload names, one per backend response shape.
const (
	Properties = "properties"
	Users      = "users"
	Favorites  = "favorites"
)

var compiledSchemas = mustCompile()

func mustCompile() map[string]*jsonschema.Schema {
	compiled, err := compile(schemasFS)
	if err != nil {
		panic(err)
	}
	return compiled
}

func compile(fsys fs.FS) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()

	files, err := fs.Glob(fsys, "schemas/*.json")
	if err != nil {
		return nil, fmt.Errorf("listing schemas: %w", err)
	}

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", file, err)
		}
		if err := compiler.AddResource(baseURL+file, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("adding schema resource %s: %w", file, err)
		}
	}

	compiled := make(map[string]*jsonschema.Schema, len(files))
	for _, file := range files {
		schema, err := compiler.Compile(baseURL + file)
		if err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", file, err)
		}
		compiled[strings.TrimSuffix(path.Base(file), ".json")] = schema
	}
	return compiled, nil
}

// Validate checks a raw response body against the named payload schema.
func Validate(payload string, body []byte) error {
	schema, ok := compiledSchemas[payload]
	if !ok {
		return fmt.Errorf("schema for payload '%s' not found", payload)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
