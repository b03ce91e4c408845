// Package schema models the input schema a trained model declares for
// prediction time, and builds renderable forms from it.
package schema

// FieldType tags how a model input field should be collected.
type FieldType string

const (
	FieldNumeric     FieldType = "numeric"
	FieldCategorical FieldType = "categorical"
	FieldText        FieldType = "text"
)

// Field is one declared model input.
type Field struct {
	Name string `json:"name"`
	Type FieldType `json:"type"`
	// Options holds the admissible values for categorical fields.
	Options []string `json:"options,omitempty"`
}

// FieldSchema is the ordered set of inputs a model expects. Order is
// display order.
type FieldSchema []Field

// FromNames builds a schema from the legacy shape: a bare sequence of column
// names with no type information. Legacy fields default to numeric.
func FromNames(names []string) FieldSchema {
	fields := make(FieldSchema, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Type: FieldNumeric})
	}
	return fields
}

// Names returns the field names in schema order.
func (s FieldSchema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}
