package registry

//go:generate go run github.com/dmarkham/enumer -type FieldKind -trimprefix FieldKind -transform lower -yaml -output kind.gen.go

// FieldKind tags the value type of a model field. It drives form
// rendering and submitted-value coercion in pkg/schema.
type FieldKind int

const (
	FieldKindText FieldKind = iota
	FieldKindInteger
	FieldKindFloat
	FieldKindBoolean
	FieldKindDatetime
	FieldKindForeignKey
)

// InputType returns the HTML input type used to render the field.
func (k FieldKind) InputType() string {
	switch k {
	case FieldKindInteger, FieldKindFloat, FieldKindForeignKey:
		return "number"
	case FieldKindBoolean:
		return "checkbox"
	case FieldKindDatetime:
		return "datetime-local"
	default:
		return "text"
	}
}
