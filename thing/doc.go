// Package thing provides the core device model for the DevIoT gateway SDK.
//
// A Thing is a named entity exposing typed, observable state fields
// (Properties) and invocable operations (Actions). Device implementers
// declare the model at build time, then a transport layer reads state,
// updates state, and invokes operations by name with a loosely typed
// argument map.
//
// # Key Types
//
//   - PropertyType: closed enumeration of primitive value kinds
//   - Property: a single named, typed state field with optional metadata
//   - Action: a named operation with an ordered list of typed parameters
//   - Thing: aggregates Properties and Actions under an identity
//
// # Usage
//
//	t := thing.New("sensor-01", "hallway", "motion")
//	t.AddProperty("seen", thing.NewProperty("lux", thing.PropertyTypeInt).WithUnit("lx"))
//	t.AddAction(thing.NewAction("setColor", map[string]thing.PropertyType{
//	    "color": thing.PropertyTypeColor,
//	}))
//	t.Handle("setColor", func(args map[string]any) error {
//	    // drive the hardware
//	    return nil
//	})
//
//	err := t.CallAction("setColor", map[string]any{"color": "00FF00"})
//
// # Thread Safety
//
// A Thing is a plain in-memory structure with no internal locking. The
// build phase (AddProperty, AddAction, Handle) and the runtime surface
// (Data, UpdateProperties, CallAction) are expected to be driven from a
// single goroutine; callers that dispatch concurrently must add their own
// synchronization, as the gateway package does.
package thing
