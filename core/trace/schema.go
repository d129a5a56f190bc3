package trace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
)

// documentSchema is the structural contract of engine output. It checks the
// envelope and the step records; node payloads are checked by the decoder,
// which knows the closed tag sets.
const documentSchema = `{
  "$defs": {
    "tagged": {
      "type": "object",
      "required": ["tag"],
      "properties": {"tag": {"type": "string"}}
    },
    "symbolicString": {
      "type": "array",
      "items": {"anyOf": [{"type": "string"}, {"$ref": "#/$defs/tagged"}]}
    },
    "entry": {
      "type": "object",
      "anyOf": [
        {"required": ["error"]},
        {"required": ["term", "env", "step"]}
      ],
      "properties": {
        "error": {"type": "string"},
        "term": {"$ref": "#/$defs/tagged"},
        "env": {
          "type": "object",
          "additionalProperties": {"$ref": "#/$defs/symbolicString"}
        },
        "locals": {
          "type": "array",
          "items": {
            "type": "object",
            "additionalProperties": {
              "anyOf": [{"type": "string"}, {"$ref": "#/$defs/symbolicString"}]
            }
          }
        },
        "step": {"$ref": "#/$defs/tagged"},
        "STDOUT": {"type": "string"},
        "STDERR": {"type": "string"}
      }
    },
    "steps": {"type": "array", "items": {"$ref": "#/$defs/entry"}}
  },
  "anyOf": [
    {"$ref": "#/$defs/steps"},
    {
      "type": "object",
      "required": ["steps"],
      "properties": {
        "version": {"type": "string", "format": "semver"},
        "steps": {"$ref": "#/$defs/steps"}
      }
    }
  ]
}`

const schemaURL = "schema://shtepper/trace.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["semver"] = func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true // type is checked separately
			}
			return semver.IsValid(canonicalVersion(s))
		}
		if err := compiler.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks a generic JSON value (as produced by ast.Parse) against the
// document schema.
func Validate(v any) error {
	s, err := documentValidator()
	if err != nil {
		return fmt.Errorf("compile trace schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("trace document does not match schema: %w", err)
	}
	return nil
}

// VersionError reports engine output from an unsupported major version.
type VersionError struct {
	Version   string
	Supported string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("engine output version %s is not supported (want %s.x.y)", e.Version, e.Supported)
}

// CheckVersion accepts versions with or without the leading "v" and rejects
// any major other than SupportedMajor.
func CheckVersion(version string) error {
	v := canonicalVersion(version)
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid engine version %q", version)
	}
	if semver.Major(v) != SupportedMajor {
		return &VersionError{Version: version, Supported: SupportedMajor}
	}
	return nil
}

func canonicalVersion(s string) string {
	if !strings.HasPrefix(s, "v") {
		return "v" + s
	}
	return s
}
