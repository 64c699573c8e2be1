package thing

import "sort"

// Action is a named operation invocable on a Thing. Each parameter is
// described by a Property whose Value slot is unused at declaration time.
type Action struct {
	Name       string
	Parameters []*Property

	// NeedPayload marks whether invocation accepts an additional "payload"
	// argument that bypasses per-parameter filtering.
	NeedPayload bool
}

// ActionModel is the serializable form of an Action: name, then parameters.
type ActionModel struct {
	Name       string          `json:"name"`
	Parameters []PropertyModel `json:"parameters"`
}

// NewAction creates an action with parameters synthesized from a
// name-to-type map. Each map value selects the parameter's PropertyType,
// never a default value. Parameters are ordered by name so the model is
// deterministic; use AddParameter when declaration order matters.
func NewAction(name string, params map[string]PropertyType) *Action {
	a := &Action{Name: name}
	names := make([]string, 0, len(params))
	for n := range params {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		a.Parameters = append(a.Parameters, NewProperty(n, params[n]))
	}
	return a
}

// AddParameter appends one parameter descriptor and returns the action for
// chained declaration.
func (a *Action) AddParameter(p *Property) *Action {
	a.Parameters = append(a.Parameters, p)
	return a
}

// WithPayload marks whether the action accepts a raw "payload" argument in
// addition to its declared parameters.
func (a *Action) WithPayload(need bool) *Action {
	a.NeedPayload = need
	return a
}

// Model returns the serializable representation of the action.
func (a *Action) Model() ActionModel {
	m := ActionModel{
		Name:       a.Name,
		Parameters: make([]PropertyModel, 0, len(a.Parameters)),
	}
	for _, p := range a.Parameters {
		m.Parameters = append(m.Parameters, p.Model())
	}
	return m
}
