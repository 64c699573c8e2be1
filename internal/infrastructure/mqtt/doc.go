// Package mqtt wraps eclipse/paho.mqtt.golang for the DevIoT topic scheme.
//
// A gateway talks to the DevIoT server over three topics derived from its
// owner and name:
//
//	/deviot/{owner}/{gateway}/data/    outgoing thing data
//	/deviot/{owner}/{gateway}/action/  incoming action commands
//	/deviot/{owner}/{gateway}/status/  online/offline status (LWT)
//
// The Client adds connection management on top of paho: connect timeout,
// auto-reconnect with exponential backoff, re-subscription after
// reconnect, and panic recovery around message handlers.
package mqtt
