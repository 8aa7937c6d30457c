package mcpkit

// Prop describes one input property of a tool schema.
type Prop map[string]any

// StringProp returns a string property.
func StringProp(description string) Prop {
	return Prop{"type": "string", "description": description}
}

// EnumProp returns a string property restricted to values.
func EnumProp(description string, values ...string) Prop {
	return Prop{"type": "string", "description": description, "enum": values}
}

// IntProp returns an integer property with a documented default.
func IntProp(description string, def int) Prop {
	return Prop{"type": "integer", "description": description, "default": def}
}

// BoolProp returns a boolean property with a documented default.
func BoolProp(description string, def bool) Prop {
	return Prop{"type": "boolean", "description": description, "default": def}
}

// StringArrayProp returns an array-of-strings property.
func StringArrayProp(description string) Prop {
	return Prop{"type": "array", "description": description, "items": map[string]any{"type": "string"}}
}

// ObjectSchema builds the JSON schema for a tool taking the given properties.
func ObjectSchema(props map[string]Prop, required ...string) map[string]any {
	properties := make(map[string]any, len(props))
	for name, prop := range props {
		properties[name] = map[string]any(prop)
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
