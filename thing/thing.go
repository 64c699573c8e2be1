package thing

import "fmt"

// Logger defines the logging collaborator used by a Thing. This allows
// different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// DefaultKind is used when New is called with an empty kind. Specialized
// device implementations should supply their own kind tag.
const DefaultKind = "thing"

// Thing aggregates Properties and Actions under an identity. Properties are
// kept in declaration order with unique names; action names need not be
// unique, and the first match wins on dispatch.
type Thing struct {
	ID   string
	Name string
	Kind string

	// Options is an open key/value bag for auxiliary configuration.
	Options map[string]any

	properties []*Property
	actions    []*Action
	handlers   map[string]ActionFunc
	logger     Logger
}

// ThingModel is the serializable form of a Thing: id, name, kind, then the
// nested property and action models.
type ThingModel struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Properties []PropertyModel `json:"properties"`
	Actions    []ActionModel   `json:"actions"`
}

// New creates a Thing. An empty kind defaults to DefaultKind.
func New(id, name, kind string) *Thing {
	if kind == "" {
		kind = DefaultKind
	}
	return &Thing{
		ID:       id,
		Name:     name,
		Kind:     kind,
		Options:  make(map[string]any),
		handlers: make(map[string]ActionFunc),
		logger:   noopLogger{},
	}
}

// SetLogger sets the logging collaborator. Registration errors and dispatch
// events are reported through it.
func (t *Thing) SetLogger(logger Logger) *Thing {
	t.logger = logger
	return t
}

// AddProperty registers state fields on the thing. Each item may be a plain
// name string (wrapped into a new default-typed Property), a *Property, or a
// Property value. Anything else is reported through the logger and skipped.
// A duplicate property name is reported and aborts the remaining batch
// entirely; earlier items in the call stay registered.
func (t *Thing) AddProperty(items ...any) *Thing {
	for _, item := range items {
		var added *Property
		switch v := item.(type) {
		case string:
			added = NewProperty(v, PropertyTypeInt)
		case *Property:
			added = v
		case Property:
			added = &v
		default:
			t.logger.Error("invalid property, only string and Property are supported",
				"thing", t.ID, "property", fmt.Sprintf("%v", item))
			continue
		}
		if t.FindProperty(added.Name) != nil {
			t.logger.Error("invalid property name, already registered",
				"thing", t.ID, "property", added.Name)
			break
		}
		t.properties = append(t.properties, added)
	}
	return t
}

// AddAction registers operations on the thing. Each item may be a name
// string (wrapped into a bare Action with no parameters), an *Action, or an
// Action value. Anything else is reported through the logger and skipped;
// unlike AddProperty there is no duplicate check and no abort.
func (t *Thing) AddAction(items ...any) *Thing {
	for _, item := range items {
		switch v := item.(type) {
		case string:
			t.actions = append(t.actions, &Action{Name: v})
		case *Action:
			t.actions = append(t.actions, v)
		case Action:
			t.actions = append(t.actions, &v)
		default:
			t.logger.Error("invalid action, only string and Action are supported",
				"thing", t.ID, "action", fmt.Sprintf("%v", item))
		}
	}
	return t
}

// FindProperty returns the registered property with the given name, or nil.
func (t *Thing) FindProperty(name string) *Property {
	for _, p := range t.properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FindAction returns the first registered action with the given name, or nil.
func (t *Thing) FindAction(name string) *Action {
	for _, a := range t.actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Properties returns the registered properties in declaration order.
func (t *Thing) Properties() []*Property {
	return t.properties
}

// Actions returns the registered actions in declaration order.
func (t *Thing) Actions() []*Action {
	return t.actions
}

// Data returns a property name to current value mapping covering all
// registered properties.
func (t *Thing) Data() map[string]any {
	data := make(map[string]any, len(t.properties))
	for _, p := range t.properties {
		data[p.Name] = p.Value
	}
	return data
}

// UpdateProperties assigns new values by property name. For each pair the
// first property whose name matches is updated; unknown names are silently
// ignored. Values are assigned unchecked.
func (t *Thing) UpdateProperties(values map[string]any) {
	for name, value := range values {
		for _, p := range t.properties {
			if p.Name == name {
				p.Value = value
				break
			}
		}
	}
}

// Model returns the serializable representation of the thing.
func (t *Thing) Model() ThingModel {
	m := ThingModel{
		ID:         t.ID,
		Name:       t.Name,
		Kind:       t.Kind,
		Properties: make([]PropertyModel, 0, len(t.properties)),
		Actions:    make([]ActionModel, 0, len(t.actions)),
	}
	for _, p := range t.properties {
		m.Properties = append(m.Properties, p.Model())
	}
	for _, a := range t.actions {
		m.Actions = append(m.Actions, a.Model())
	}
	return m
}

// String formats the thing as "id.name(kind)" for logs.
func (t *Thing) String() string {
	return fmt.Sprintf("%s.%s(%s)", t.ID, t.Name, t.Kind)
}
