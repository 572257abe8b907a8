package envelope

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidate_Start(t *testing.T) {
	req := NewStart(RequestPayload{
		Selection:            "neurons",
		GovernanceCanisterID: "rrkah-fqaaa-aaaaa-aaaaq-cai",
		Host:                 "http://127.0.0.1:4943",
		Network:              "local",
	})

	if err := req.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_StartWithoutPayload(t *testing.T) {
	req := Request{Msg: KindStart}

	err := req.Validate()
	if err == nil {
		t.Fatal("Validate() should return error for start without payload")
	}
	if !errors.Is(err, ErrPayloadMismatch) {
		t.Errorf("error = %v, want ErrPayloadMismatch", err)
	}
}

func TestValidate_StartWithoutNetwork(t *testing.T) {
	req := NewStart(RequestPayload{Host: "http://127.0.0.1:4943"})

	err := req.Validate()
	if !errors.Is(err, ErrPayloadMismatch) {
		t.Errorf("error = %v, want ErrPayloadMismatch", err)
	}
}

func TestValidate_ControlKindsRejectPayload(t *testing.T) {
	for _, kind := range []RequestKind{KindStop, KindBusy, KindIdle} {
		req := Request{Msg: kind, Data: &RequestPayload{Network: "local"}}
		if err := req.Validate(); !errors.Is(err, ErrPayloadMismatch) {
			t.Errorf("Validate(%q with payload) = %v, want ErrPayloadMismatch", kind, err)
		}

		req.Data = nil
		if err := req.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", kind, err)
		}
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	req := Request{Msg: "reboot"}

	err := req.Validate()
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("error = %v, want ErrUnknownKind", err)
	}
}

func TestRequest_JSONShape(t *testing.T) {
	stop := NewStop()
	data, err := json.Marshal(stop)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "data") {
		t.Errorf("stop request should omit data, got %s", data)
	}

	start := NewStart(RequestPayload{Network: "local"})
	data, err = json.Marshal(start)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Request
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Msg != KindStart {
		t.Errorf("Msg = %q, want %q", decoded.Msg, KindStart)
	}
	if decoded.Data == nil || decoded.Data.Network != "local" {
		t.Errorf("payload did not survive the round trip: %+v", decoded.Data)
	}
}

func TestNewResponse(t *testing.T) {
	resp, err := NewResponse("sync", map[string]string{"DFX_NETWORK": "local"})
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	if resp.ID == "" {
		t.Error("response should carry a correlation ID")
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("response data is not valid JSON: %v", err)
	}
	if body["DFX_NETWORK"] != "local" {
		t.Errorf("data = %v, want DFX_NETWORK=local", body)
	}
}

func TestNewResponse_NilData(t *testing.T) {
	resp, err := NewResponse("stopped", nil)
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	if resp.Data != nil {
		t.Errorf("nil data should produce an empty body, got %s", resp.Data)
	}
}
