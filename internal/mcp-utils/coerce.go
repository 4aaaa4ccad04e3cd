// Package mcputils holds helpers shared by MCP tool handlers.
package mcputils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is implemented by mcp.CallToolRequest.
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// BindArguments decodes request arguments into target, matching keys against
// json tags. Clients that send every value as a string are accommodated:
// "false" binds to a bool and "3" to an int. Unknown keys are an error.
func BindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       trimScalarHook,
		ErrorUnused:      true,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(request.GetArguments()); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// trimScalarHook strips whitespace from strings headed for bool or numeric
// fields, so " true " still binds.
func trimScalarHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return strings.TrimSpace(data.(string)), nil
	}
	return data, nil
}
