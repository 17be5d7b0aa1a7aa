package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/entity"
)

var (
	compiledMu sync.Mutex
	compiled   = map[constants.ReportType]*jsonschema.Schema{}
)

// CompileSchema compiles a schema map with the default draft.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	schema, err := CompileSchema(schemaMap)
	if err != nil {
		return err
	}
	return validateBytes(schema, data)
}

func validateBytes(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

func schemaFor(rt constants.ReportType) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()
	if s, ok := compiled[rt]; ok {
		return s, nil
	}
	s, err := CompileSchema(BuildReportSchema(rt))
	if err != nil {
		return nil, err
	}
	compiled[rt] = s
	return s, nil
}

// ValidateReport checks r against the schema of its own report type. Any
// failure wraps common.ErrSchema.
func ValidateReport(r *entity.Report) error {
	if r == nil {
		return common.NewAppError("SCHEMA_INVALID", "nil report", common.ErrSchema)
	}
	if !r.ReportType.Valid() {
		return common.NewAppError("SCHEMA_INVALID",
			fmt.Sprintf("report type %q has no schema", r.ReportType), common.ErrSchema)
	}
	schema, err := schemaFor(r.ReportType)
	if err != nil {
		return common.NewAppError("SCHEMA_INVALID", "schema compile", errors.Join(common.ErrSchema, err))
	}
	data, err := json.Marshal(r)
	if err != nil {
		return common.NewAppError("SCHEMA_INVALID", "marshal report", errors.Join(common.ErrSchema, err))
	}
	if err := validateBytes(schema, data); err != nil {
		return common.NewAppError("SCHEMA_INVALID",
			fmt.Sprintf("%s %q", r.ReportType, r.Identifier()), errors.Join(common.ErrSchema, err))
	}
	return nil
}
