package config

// JSONSchema represents a JSON Schema for action parameters.
type JSONSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single property in a JSON Schema.
type PropertySchema struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// BuildInputSchema derives the JSON Schema for an action's arguments.
// Every declared argument appears in the schema, including cwd and
// stdin carriers; only command assembly treats those specially.
func BuildInputSchema(action ActionDef) *JSONSchema {
	schema := &JSONSchema{
		Type:       "object",
		Properties: map[string]PropertySchema{},
	}

	for _, arg := range action.Args {
		prop := PropertySchema{
			Type:        string(arg.EffectiveType()),
			Description: arg.Description,
		}
		if arg.Default != nil {
			prop.Default = arg.Default
		}
		if len(arg.Enum) > 0 {
			prop.Enum = arg.Enum
		}
		schema.Properties[arg.Name] = prop

		if arg.Required {
			schema.Required = append(schema.Required, arg.Name)
		}
	}
	return schema
}
