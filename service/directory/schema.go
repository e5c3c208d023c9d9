package directory

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/authorities.json
var schemaDocument string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaDocument))
	})
	return schema, schemaErr
}

func validateSchema(document interface{}) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDirectory, strings.Join(issues, "; "))
}
