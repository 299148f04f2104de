package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/modeladmin/madmin/pkg/registry"
)

// datetimeLayouts are accepted on input, tried in order. The first is
// also the canonical rendering format.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ValidationErrors maps field name to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+v[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field is one editable form field: the descriptor field plus the
// submitted (or initial) value and any validation error, both used when
// re-rendering the form.
type Field struct {
	registry.Field
	Value string
	Error string
}

// Schema is the generic create/edit form for a model. It mirrors the
// descriptor's field list exactly: every field editable, none excluded.
type Schema struct {
	Descriptor *registry.Descriptor
	Fields     []Field
}

// Build derives a Schema from a model descriptor.
func Build(desc *registry.Descriptor) *Schema {
	fields := make([]Field, len(desc.Fields))
	for i, f := range desc.Fields {
		fields[i] = Field{Field: f}
	}
	return &Schema{Descriptor: desc, Fields: fields}
}

// SetInitial fills field values from an existing record, for rendering
// an edit form.
func (s *Schema) SetInitial(existing map[string]interface{}) {
	for i := range s.Fields {
		if v, ok := existing[s.Fields[i].Name]; ok {
			s.Fields[i].Value = Format(s.Fields[i].Kind, v)
		}
	}
}

// Bind validates submitted values against the schema. On success it
// returns a value map ready for persistence: for a create all fields
// are present, for an edit the submitted values are merged over
// existing. On failure it returns the field-level errors and the
// submitted values stay on the schema for re-rendering; nothing may be
// persisted.
func (s *Schema) Bind(values map[string]string, existing map[string]interface{}) (map[string]interface{}, ValidationErrors) {
	errs := ValidationErrors{}
	out := map[string]interface{}{}
	for k, v := range existing {
		out[k] = v
	}

	for i := range s.Fields {
		f := &s.Fields[i]
		raw, submitted := values[f.Name]
		f.Value = raw
		f.Error = ""

		if strings.TrimSpace(raw) == "" {
			if !submitted && existing != nil {
				// Unsubmitted edit field keeps its stored value.
				continue
			}
			if f.Kind == registry.FieldKindBoolean {
				// Unchecked checkboxes are absent from form bodies.
				out[f.Name] = false
				continue
			}
			if f.Required {
				f.Error = "this field is required"
				errs[f.Name] = f.Error
				continue
			}
			out[f.Name] = nil
			continue
		}

		val, err := coerce(f.Kind, strings.TrimSpace(raw))
		if err != nil {
			f.Error = err.Error()
			errs[f.Name] = f.Error
			continue
		}
		// MaxLength counts characters, not bytes.
		if f.Kind == registry.FieldKindText && f.MaxLength > 0 && utf8.RuneCountInString(raw) > f.MaxLength {
			f.Error = fmt.Sprintf("value exceeds maximum length of %d", f.MaxLength)
			errs[f.Name] = f.Error
			continue
		}
		out[f.Name] = val
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func coerce(kind registry.FieldKind, raw string) (interface{}, error) {
	switch kind {
	case registry.FieldKindText:
		return raw, nil
	case registry.FieldKindInteger, registry.FieldKindForeignKey:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("enter a whole number")
		}
		return n, nil
	case registry.FieldKindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("enter a number")
		}
		return f, nil
	case registry.FieldKindBoolean:
		switch strings.ToLower(raw) {
		case "true", "1", "on", "yes":
			return true, nil
		case "false", "0", "off", "no":
			return false, nil
		}
		return nil, fmt.Errorf("enter a valid boolean")
	case registry.FieldKindDatetime:
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("enter a valid date/time")
	}
	return nil, fmt.Errorf("unsupported field kind %s", kind)
}

// Format renders a stored value back into its form representation.
func Format(kind registry.FieldKind, v interface{}) string {
	if v == nil {
		return ""
	}
	switch kind {
	case registry.FieldKindDatetime:
		if t, ok := v.(time.Time); ok {
			return t.Format(datetimeLayouts[0])
		}
	case registry.FieldKindBoolean:
		if b, ok := v.(bool); ok {
			if b {
				return "true"
			}
			return "false"
		}
	}
	return fmt.Sprintf("%v", v)
}
