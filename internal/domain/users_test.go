package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeUsersResponse(t *testing.T) {
	payload := []byte(`{
		"status": "success",
		"message": "users fetched successfully",
		"data": [
			{"id": 1, "name": "Ada Eze", "email": "ada.eze@example.com"},
			{"id": 2, "name": "Tunde Bakare", "email": "tunde.bakare@example.com"}
		]
	}`)

	got, err := DecodeUsersResponse(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Status != "success" || got.Message != "users fetched successfully" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	want := []User{
		{ID: 1, Name: "Ada Eze", Email: "ada.eze@example.com"},
		{ID: 2, Name: "Tunde Bakare", Email: "tunde.bakare@example.com"},
	}
	if !reflect.DeepEqual(got.Data, want) {
		t.Fatalf("unexpected users: %+v", got.Data)
	}
}

func TestDecodeUsersResponseEmptyList(t *testing.T) {
	got, err := DecodeUsersResponse([]byte(`{"status":"success","message":"ok","data":[]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got.Data) != 0 {
		t.Fatalf("expected no users, got %+v", got.Data)
	}
}

func TestDecodeUsersResponseMissingEnvelopeField(t *testing.T) {
	_, err := DecodeUsersResponse([]byte(`{"status":"success","message":"ok"}`))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Field != "data" {
		t.Fatalf("expected field data, got %q", decodeErr.Field)
	}
}

func TestDecodeUsersResponseMissingEntryField(t *testing.T) {
	payload := []byte(`{
		"status": "success",
		"message": "ok",
		"data": [
			{"id": 1, "name": "Ada Eze", "email": "ada.eze@example.com"},
			{"id": 2, "name": "Tunde Bakare"}
		]
	}`)

	_, err := DecodeUsersResponse(payload)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %T: %v", err, err)
	}
	if decodeErr.Field != "email" {
		t.Fatalf("expected field email, got %q", decodeErr.Field)
	}
}

func TestDecodeUsersResponseMalformedData(t *testing.T) {
	_, err := DecodeUsersResponse([]byte(`{"status":"success","message":"ok","data":{"id":1}}`))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %T: %v", err, err)
	}
}

func TestUsersResponseRoundTrip(t *testing.T) {
	resp := UsersResponse{
		Status:  "success",
		Message: "ok",
		Data:    []User{{ID: 7, Name: "Bisi Ade", Email: "bisi.ade@example.com"}},
	}

	data, err := Encode(resp)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := DecodeUsersResponse(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(resp, back) {
		t.Fatalf("round trip mismatch: %+v != %+v", back, resp)
	}
}
