package thing

import "fmt"

// PropertyType identifies the primitive value kind a Property holds.
// The integer codes are part of the wire format and must not change.
type PropertyType int

// Property type constants.
const (
	PropertyTypeInt    PropertyType = 0
	PropertyTypeString PropertyType = 1
	PropertyTypeBool   PropertyType = 2
	PropertyTypeColor  PropertyType = 3
)

// String returns a human-readable name for logs and diagnostics.
func (t PropertyType) String() string {
	switch t {
	case PropertyTypeInt:
		return "int"
	case PropertyTypeString:
		return "string"
	case PropertyTypeBool:
		return "bool"
	case PropertyTypeColor:
		return "color"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// DefaultValue returns the canonical zero value for a property type.
// Colors default to white ("FFFFFF" hex RGB). Any value outside the four
// known types yields nil, the "no default" sentinel.
func DefaultValue(t PropertyType) any {
	switch t {
	case PropertyTypeInt:
		return 0
	case PropertyTypeBool:
		return false
	case PropertyTypeString:
		return ""
	case PropertyTypeColor:
		return "FFFFFF"
	default:
		return nil
	}
}

// Property is a single named, typed state field of a Thing. Actions reuse
// Property as their parameter descriptor, with the Value slot unused.
//
// The model does not enforce that Value matches Type beyond construction
// time defaulting; callers are trusted.
type Property struct {
	Name        string
	Type        PropertyType
	Value       any
	Range       any
	Unit        string
	Description string
}

// PropertyModel is the serializable form of a Property. Field order is a
// fixed wire contract: name, type, range, value, unit, description.
type PropertyModel struct {
	Name        string       `json:"name"`
	Type        PropertyType `json:"type"`
	Range       any          `json:"range"`
	Value       any          `json:"value"`
	Unit        string       `json:"unit"`
	Description string       `json:"description"`
}

// NewProperty creates a property of the given type with its canonical
// default value. Use the With* setters to attach an explicit value or
// metadata.
func NewProperty(name string, t PropertyType) *Property {
	return &Property{
		Name:  name,
		Type:  t,
		Value: DefaultValue(t),
	}
}

// WithValue sets an explicit value, replacing the type default. Falsy
// values (0, false, "") are preserved verbatim.
func (p *Property) WithValue(value any) *Property {
	p.Value = value
	return p
}

// WithRange sets the allowed range descriptor, either a (min,max) pair or
// an allowed-value set. The model records it for consumers; it is not
// checked on assignment.
func (p *Property) WithRange(r any) *Property {
	p.Range = r
	return p
}

// WithUnit sets the display unit.
func (p *Property) WithUnit(unit string) *Property {
	p.Unit = unit
	return p
}

// WithDescription sets the human-readable description.
func (p *Property) WithDescription(description string) *Property {
	p.Description = description
	return p
}

// Model returns the serializable representation of the property.
func (p *Property) Model() PropertyModel {
	return PropertyModel{
		Name:        p.Name,
		Type:        p.Type,
		Range:       p.Range,
		Value:       p.Value,
		Unit:        p.Unit,
		Description: p.Description,
	}
}

// String formats the property as "name:valueunit" for logs.
func (p *Property) String() string {
	return fmt.Sprintf("%s:%v%s", p.Name, p.Value, p.Unit)
}
