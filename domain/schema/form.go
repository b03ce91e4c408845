package schema

// ControlKind resolves a field to one of three input controls.
type ControlKind string

const (
	ControlChoice ControlKind = "choice"
	ControlNumber ControlKind = "number"
	ControlText   ControlKind = "text"
)

// Unselected is the explicit sentinel a choice control starts on. It keeps an
// untouched categorical field distinguishable from one where the user picked
// the first option.
const Unselected = ""

// FormField is one renderable input descriptor.
type FormField struct {
	Name    string      `json:"name"`
	Kind    ControlKind `json:"kind"`
	Options []string    `json:"options,omitempty"`
	Default string      `json:"default"`
}

// BuildForm resolves a field schema into ordered form descriptors. The
// target column is dropped even when the schema carries it, so the form
// never asks for the value being predicted.
func BuildForm(s FieldSchema, target string) []FormField {
	fields := make([]FormField, 0, len(s))
	for _, f := range s {
		if f.Name == target {
			continue
		}
		fields = append(fields, FormField{
			Name:    f.Name,
			Kind:    controlFor(f),
			Options: f.Options,
			Default: Unselected,
		})
	}
	return fields
}

// controlFor picks the control kind. A categorical field without options has
// nothing to choose from and degrades to free text.
func controlFor(f Field) ControlKind {
	switch f.Type {
	case FieldCategorical:
		if len(f.Options) > 0 {
			return ControlChoice
		}
		return ControlText
	case FieldText:
		return ControlText
	default:
		return ControlNumber
	}
}
