package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeFeatureResponse(t *testing.T) {
	payload := []byte(`{"success":true,"message":"ok","data":{"id":"42"}}`)

	got, err := DecodeFeatureResponse(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !got.Success || got.Message != "ok" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if got.Data["id"] != "42" {
		t.Fatalf("unexpected data: %+v", got.Data)
	}
}

func TestDecodeFeatureResponseWithoutData(t *testing.T) {
	got, err := DecodeFeatureResponse([]byte(`{"success":false,"message":"rejected"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Success || got.Message != "rejected" || got.Data != nil {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestDecodeFeatureResponseMissingField(t *testing.T) {
	_, err := DecodeFeatureResponse([]byte(`{"success":true}`))
	if err == nil {
		t.Fatal("expected an error for a missing message field")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Field != "message" {
		t.Fatalf("expected field message, got %q", decodeErr.Field)
	}
}

func TestDecodeFeatureResponseWrongType(t *testing.T) {
	got, err := DecodeFeatureResponse([]byte(`{"success":"yes","message":"ok"}`))
	if err == nil {
		t.Fatal("expected an error for a mistyped success field")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %T: %v", err, err)
	}
	if got.Success || got.Message != "" {
		t.Fatalf("expected a zero record on failure, got %+v", got)
	}
}

func TestFeatureRequestRoundTrip(t *testing.T) {
	optional := true
	req := FeatureRequest{Param1: "TestValue", Param2: 123, OptionalParam: &optional}

	data, err := Encode(req)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	var back FeatureRequest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(req, back) {
		t.Fatalf("round trip mismatch: %+v != %+v", back, req)
	}
}

func TestFeatureRequestOmitsOptionalParam(t *testing.T) {
	data, err := Encode(FeatureRequest{Param1: "TestValue", Param2: 123})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	fields, err := objectFields(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, ok := fields["optionalParam"]; ok {
		t.Fatalf("optionalParam should be omitted when unset: %s", data)
	}
	for _, name := range []string{"param1", "param2"} {
		if _, ok := fields[name]; !ok {
			t.Fatalf("missing %s in %s", name, data)
		}
	}
}
