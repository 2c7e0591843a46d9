package domain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// User is one directory entry in the users listing.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UsersResponse is the envelope returned by GET /users. Data preserves the
// order the server sent.
type UsersResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []User `json:"data"`
}

// DecodeUsersResponse parses a users envelope. The status, message and data
// fields must be present, as must id, name and email on every entry.
func DecodeUsersResponse(data []byte) (UsersResponse, error) {
	fields, err := objectFields(data)
	if err != nil {
		return UsersResponse{}, err
	}
	for _, name := range []string{"status", "message", "data"} {
		if _, ok := fields[name]; !ok {
			return UsersResponse{}, &DecodeError{Field: name}
		}
	}

	var entries []jsoniter.RawMessage
	if err := json.Unmarshal(fields["data"], &entries); err != nil {
		return UsersResponse{}, &DecodeError{Field: "data", Err: err}
	}
	for i, entry := range entries {
		if err := requireFields(entry, "id", "name", "email"); err != nil {
			return UsersResponse{}, fmt.Errorf("data[%d]: %w", i, err)
		}
	}

	var out UsersResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return UsersResponse{}, &DecodeError{Err: err}
	}
	return out, nil
}
