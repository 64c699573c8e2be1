package mqtt

import (
	"fmt"
	"strings"
)

// topicReplacer sanitizes owner and gateway names for use in topic paths.
// Email-style owners ("user@example.com") are the common case.
var topicReplacer = strings.NewReplacer("@", "-", ".", "_", "/", "_", ":", "_")

// Topics builds the DevIoT topic set for one gateway identity.
//
//	topics := mqtt.Topics{Owner: "user@example.com", Gateway: "rack-1"}
//	topics.Data() // "/deviot/user-example_com/rack-1/data/"
type Topics struct {
	Owner   string
	Gateway string
}

// Data returns the topic the gateway publishes thing data to.
func (t Topics) Data() string {
	return t.build("data")
}

// Action returns the topic the gateway receives action commands on.
func (t Topics) Action() string {
	return t.build("action")
}

// Status returns the topic carrying the gateway's online/offline status.
// The broker publishes the Last Will here on unexpected disconnect.
func (t Topics) Status() string {
	return t.build("status")
}

func (t Topics) build(channel string) string {
	return fmt.Sprintf("/deviot/%s/%s/%s/",
		topicReplacer.Replace(t.Owner),
		topicReplacer.Replace(t.Gateway),
		channel,
	)
}
