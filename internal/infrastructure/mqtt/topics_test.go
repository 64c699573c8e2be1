package mqtt

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		gateway string
		channel func(Topics) string
		want    string
	}{
		{
			name:    "data plain",
			owner:   "alice",
			gateway: "rack-1",
			channel: Topics.Data,
			want:    "/deviot/alice/rack-1/data/",
		},
		{
			name:    "action plain",
			owner:   "alice",
			gateway: "rack-1",
			channel: Topics.Action,
			want:    "/deviot/alice/rack-1/action/",
		},
		{
			name:    "status plain",
			owner:   "alice",
			gateway: "rack-1",
			channel: Topics.Status,
			want:    "/deviot/alice/rack-1/status/",
		},
		{
			name:    "email owner sanitized",
			owner:   "user@example.com",
			gateway: "rack-1",
			channel: Topics.Data,
			want:    "/deviot/user-example_com/rack-1/data/",
		},
		{
			name:    "gateway with separators sanitized",
			owner:   "alice",
			gateway: "lab/rack:1",
			channel: Topics.Action,
			want:    "/deviot/alice/lab_rack_1/action/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics := Topics{Owner: tt.owner, Gateway: tt.gateway}
			if got := tt.channel(topics); got != tt.want {
				t.Errorf("topic = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildStatusPayload(t *testing.T) {
	withReason := buildStatusPayload("rack-1", "offline", "graceful_shutdown")
	if want := `"status":"offline"`; !strings.Contains(withReason, want) {
		t.Errorf("payload %s missing %s", withReason, want)
	}
	if want := `"reason":"graceful_shutdown"`; !strings.Contains(withReason, want) {
		t.Errorf("payload %s missing %s", withReason, want)
	}

	without := buildStatusPayload("rack-1", "online", "")
	if strings.Contains(without, "reason") {
		t.Errorf("payload %s should not carry a reason", without)
	}
}
