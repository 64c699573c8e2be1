package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ailuropoda0/deviot-gateway-go/thing"
)

func TestModel(t *testing.T) {
	cfg := testConfig()
	cfg.Kind = "pi"
	cfg.Description = "living room gateway"
	g := New(cfg)

	lamp := thing.New("lamp-1", "lamp", "light")
	lamp.AddProperty(thing.NewProperty("power", thing.PropertyTypeBool))
	g.RegisterThing(context.Background(), lamp)
	g.RegisterThing(context.Background(), thing.New("t-1", "climate", "sensor"))

	m := g.Model()
	if m.Name != "home-gw" || m.Kind != "pi" || m.Owner != "alice" {
		t.Errorf("model identity = %q/%q/%q", m.Name, m.Kind, m.Owner)
	}
	if m.Host != "127.0.0.1" || m.Port != 1883 {
		t.Errorf("model broker = %s:%d, want 127.0.0.1:1883", m.Host, m.Port)
	}
	if m.Mode != ModeMQTT {
		t.Errorf("model mode = %d, want %d", m.Mode, ModeMQTT)
	}
	if m.Data != "/deviot/alice/home-gw/data/" {
		t.Errorf("data topic = %q", m.Data)
	}
	if m.Action != "/deviot/alice/home-gw/action/" {
		t.Errorf("action topic = %q", m.Action)
	}
	if len(m.Sensors) != 2 || m.Sensors[0].ID != "lamp-1" || m.Sensors[1].ID != "t-1" {
		t.Errorf("sensors = %+v", m.Sensors)
	}
}

func TestModelFieldOrder(t *testing.T) {
	g := New(testConfig())

	raw, err := json.Marshal(g.Model())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := []string{`"name"`, `"kind"`, `"host"`, `"port"`, `"data"`, `"action"`, `"sensors"`, `"mode"`, `"owner"`}
	last := -1
	for _, field := range want {
		idx := strings.Index(string(raw), field)
		if idx < 0 {
			t.Fatalf("field %s missing from %s", field, raw)
		}
		if idx < last {
			t.Errorf("field %s out of order in %s", field, raw)
		}
		last = idx
	}
}

func TestRegister(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Server = strings.TrimPrefix(srv.URL, "http://")
	g := New(cfg)
	g.RegisterThing(context.Background(), thing.New("lamp-1", "lamp", "light"))

	if err := g.register(context.Background()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if gotPath != "/api/v1/gateways" {
		t.Errorf("path = %q, want /api/v1/gateways", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}

	var m Model
	if err := json.Unmarshal(gotBody, &m); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if m.Name != "home-gw" || len(m.Sensors) != 1 {
		t.Errorf("registered model = %+v", m)
	}
}

func TestRegisterServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Server = strings.TrimPrefix(srv.URL, "http://")
	g := New(cfg)

	err := g.register(context.Background())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Errorf("register error = %v, want ErrRegistrationFailed", err)
	}
}

func TestRegisterUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.Server = "127.0.0.1:1" // nothing listens here
	g := New(cfg)

	err := g.register(context.Background())
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Errorf("register error = %v, want ErrRegistrationFailed", err)
	}
}
