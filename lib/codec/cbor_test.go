// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

// sampleRequest mirrors the shape of a lookup request on the wire.
type sampleRequest struct {
	Action string `cbor:"action"`
	Name   string `cbor:"name,omitempty"`
	Family string `cbor:"family,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRequest{
		Action: "resolve",
		Name:   "localuser-1024",
		Family: "ipv4",
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleRequest
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	message := sampleRequest{Action: "reverse", Family: "ipv6"}

	first, err := Marshal(message)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(message)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding produced different bytes:\n%x\n%x", first, second)
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	messages := []sampleRequest{
		{Action: "resolve", Name: "localuser"},
		{Action: "reverse"},
	}

	encoder := NewEncoder(&buf)
	for _, message := range messages {
		if err := encoder.Encode(message); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buf)
	for i, want := range messages {
		var got sampleRequest
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode message %d: %v", i, err)
		}
		if got != want {
			t.Errorf("message %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{
		"action": "resolve",
		"name":   "localuser",
		"shiny":  "new field",
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleRequest
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Action != "resolve" || decoded.Name != "localuser" {
		t.Errorf("decoded = %+v, want action/name preserved", decoded)
	}
}

func TestDefaultMapType(t *testing.T) {
	data, err := Marshal(map[string]any{"key": "value"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	asMap, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded any-typed map is %T, want map[string]any", decoded)
	}
	if asMap["key"] != "value" {
		t.Errorf("decoded map = %v", asMap)
	}
}
