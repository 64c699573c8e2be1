package thing

import "fmt"

// ActionFunc is the implementation signature for a declared action. The
// argument map contains only keys accepted by the action's declaration:
// its parameter names, plus "payload" when the action allows one.
type ActionFunc func(args map[string]any) error

// PayloadKey is the argument key reserved for the raw payload of actions
// declared with WithPayload(true).
const PayloadKey = "payload"

// Handle registers the implementation for an action name. Go has no
// by-name member lookup worth reaching for, so implementations are an
// explicit registry populated at build time. Registering the same name
// again replaces the previous handler.
func (t *Thing) Handle(name string, fn ActionFunc) *Thing {
	t.handlers[name] = fn
	return t
}

// CallAction resolves a declared action by name, filters the supplied
// argument map down to the action's declared parameter names (plus
// "payload" if accepted), and forwards the filtered arguments to the
// registered handler. Extra argument keys are silently dropped; the
// caller's map is never mutated.
//
// Returns ErrHandlerNotFound when no implementation is registered for the
// name, ErrActionNotFound when no Action with the name is declared, or the
// handler's own error. One informational log entry is emitted after a
// successful invocation.
func (t *Thing) CallAction(name string, args map[string]any) error {
	fn, ok := t.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %q on %s", ErrHandlerNotFound, name, t)
	}

	action := t.FindAction(name)
	if action == nil {
		return fmt.Errorf("%w: %q on %s", ErrActionNotFound, name, t)
	}

	accepted := make(map[string]struct{}, len(action.Parameters)+1)
	for _, p := range action.Parameters {
		accepted[p.Name] = struct{}{}
	}
	if action.NeedPayload {
		accepted[PayloadKey] = struct{}{}
	}

	filtered := make(map[string]any, len(accepted))
	for k, v := range args {
		if _, ok := accepted[k]; ok {
			filtered[k] = v
		}
	}

	if err := fn(filtered); err != nil {
		return fmt.Errorf("calling action %q on %s: %w", name, t, err)
	}

	t.logger.Info("action called", "thing", t.String(), "action", name, "args", filtered)
	return nil
}
