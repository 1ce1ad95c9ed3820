// Package hyperfine loads hyperfine --export-json result documents into
// in-memory result sets, validating their structure along the way.
package hyperfine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Brickell-Research/perf/internal/models"
	"github.com/Brickell-Research/perf/schemas"
)

// defaultPrinter formats schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// resultsSchema is the compiled JSON Schema for hyperfine export documents.
var resultsSchema *jsonschema.Schema

func init() {
	resultsSchema = mustCompileSchema(schemas.ResultsSchemaJSON, "results.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// NotFoundError indicates the result file does not exist or is unreadable.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("results file %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedDocumentError indicates the file content is not a well-formed
// hyperfine export: invalid JSON, a schema violation, or a missing required
// field.
type MalformedDocumentError struct {
	Path   string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed results document %s: %s", e.Path, e.Reason)
}

// resultEntry mirrors one element of the hyperfine "results" array. Fields
// the harness does not need (user, system, exit codes, ...) are ignored.
type resultEntry struct {
	Command    string         `json:"command"`
	Mean       float64        `json:"mean"`
	Stddev     float64        `json:"stddev"`
	Times      []float64      `json:"times"`
	Parameters map[string]any `json:"parameters"`
}

type document struct {
	Results []resultEntry `json:"results"`
}

// Load reads and validates a hyperfine JSON export, returning the result set
// in document order. Errors are typed: *NotFoundError when the path is
// unreadable, *MalformedDocumentError for structural problems, and
// *models.DuplicateNameError when two entries share a name.
func Load(path string) (*models.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse validates raw document bytes. The path is used for error messages
// and as the result set's origin.
func Parse(path string, data []byte) (*models.ResultSet, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, &MalformedDocumentError{Path: path, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if errs := validateInstance(resultsSchema, instance); len(errs) > 0 {
		return nil, &MalformedDocumentError{Path: path, Reason: strings.Join(errs, "; ")}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDocumentError{Path: path, Reason: err.Error()}
	}

	entries := make([]models.BenchmarkSummary, 0, len(doc.Results))
	for i, r := range doc.Results {
		params, err := decodeParameters(r.Parameters)
		if err != nil {
			return nil, &MalformedDocumentError{
				Path:   path,
				Reason: fmt.Sprintf("results[%d].parameters: %v", i, err),
			}
		}
		entries = append(entries, models.BenchmarkSummary{
			Name:       r.Command,
			Mean:       r.Mean,
			Stddev:     r.Stddev,
			Times:      r.Times,
			Parameters: params,
		})
	}

	return models.NewResultSet(path, entries)
}

// decodeParameters converts hyperfine's loosely-typed parameter map (all
// values are strings on the wire) into the typed scenario view. Unknown
// parameter names are ignored.
func decodeParameters(raw map[string]any) (*models.ScenarioParams, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var params models.ScenarioParams
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &params,
		WeaklyTypedInput: true, // "120" -> 120
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return &params, nil
}

func validateInstance(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
