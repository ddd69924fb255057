package tracker

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"jobmate/jobboard/internal/model"
)

//go:embed application.schema.json
var applicationSchemaJSON []byte

var applicationSchema = mustSchema(applicationSchemaJSON)

func mustSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("tracker: invalid application schema: %v", err))
	}
	return s
}

// ValidateApplication checks a submission before it reaches the store.
// It returns a *ValidationError listing every offending field.
func ValidateApplication(data model.ApplicationData) error {
	res, err := applicationSchema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("validate application: %w", err)
	}
	if res.Valid() {
		return nil
	}
	fields := make(map[string]string, len(res.Errors()))
	for _, e := range res.Errors() {
		if _, seen := fields[e.Field()]; !seen {
			fields[e.Field()] = e.Description()
		}
	}
	return &ValidationError{Msg: "invalid application", Fields: fields}
}
