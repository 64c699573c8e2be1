// Package gateway connects a set of Things to a DevIoT server.
//
// A Gateway owns the transport side of the SDK: it announces itself to
// the DevIoT server over HTTP at a fixed interval, publishes thing data
// to the gateway's MQTT data topic, and dispatches incoming action
// commands from the action topic onto the registered Things.
//
// # Usage
//
//	gw := gateway.New(gateway.Config{
//	    Name:   "rack-1",
//	    Kind:   "device",
//	    Owner:  "user@example.com",
//	    Server: "deviot.example.com:9000",
//	    Broker: gateway.BrokerConfig{Host: "localhost", Port: 1883},
//	})
//	gw.RegisterThing(ctx, myThing)
//
//	if err := gw.Start(ctx); err != nil {
//	    return err
//	}
//	defer gw.Stop()
//
//	gw.SendData(ctx, myThing)
//
// # Thread Safety
//
// All Gateway methods are safe for concurrent use. Incoming action
// dispatch runs on MQTT handler goroutines and is serialized against
// state reads, providing the external synchronization the thing package
// itself does not.
package gateway
