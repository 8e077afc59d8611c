package catalog

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/tbckr/catalog/internal/fetch"
)

// Service is one entry of the services endpoint. The catalog API owns its
// shape: the object is kept as received and re-encodes to the same JSON.
// Only category.name is interpreted here.
type Service struct {
	raw json.RawMessage
}

// NewService wraps a raw JSON value. raw is copied.
func NewService(raw []byte) Service {
	return Service{raw: cloneRaw(raw)}
}

// Raw returns the JSON value as received.
func (s Service) Raw() json.RawMessage { return s.raw }

// Get queries the raw value with a gjson path.
func (s Service) Get(path string) gjson.Result { return gjson.GetBytes(s.raw, path) }

// ID returns the "id" field as a string, or "" when absent.
func (s Service) ID() string { return s.Get("id").String() }

// Name returns the "name" field, or "" when absent.
func (s Service) Name() string { return s.Get("name").String() }

// CategoryName returns category.name, or "" when it is absent, null or empty.
func (s Service) CategoryName() string {
	v := s.Get("category.name")
	if !fetch.Truthy(v) {
		return ""
	}
	return v.String()
}

// MarshalJSON returns the raw value unchanged.
func (s Service) MarshalJSON() ([]byte, error) { return marshalRaw(s.raw) }

// UnmarshalJSON keeps a copy of b.
func (s *Service) UnmarshalJSON(b []byte) error {
	s.raw = cloneRaw(b)
	return nil
}

// Branch is one entry of the branches endpoint, passed through unchanged.
type Branch struct {
	raw json.RawMessage
}

// NewBranch wraps a raw JSON value. raw is copied.
func NewBranch(raw []byte) Branch {
	return Branch{raw: cloneRaw(raw)}
}

// Raw returns the JSON value as received.
func (b Branch) Raw() json.RawMessage { return b.raw }

// Get queries the raw value with a gjson path.
func (b Branch) Get(path string) gjson.Result { return gjson.GetBytes(b.raw, path) }

// ID returns the "id" field as a string, or "" when absent.
func (b Branch) ID() string { return b.Get("id").String() }

// Name returns the "name" field, or "" when absent.
func (b Branch) Name() string { return b.Get("name").String() }

// Address returns the "address" field, or "" when absent.
func (b Branch) Address() string { return b.Get("address").String() }

// Phone returns the "phone" field, or "" when absent.
func (b Branch) Phone() string { return b.Get("phone").String() }

// MarshalJSON returns the raw value unchanged.
func (b Branch) MarshalJSON() ([]byte, error) { return marshalRaw(b.raw) }

// UnmarshalJSON keeps a copy of data.
func (b *Branch) UnmarshalJSON(data []byte) error {
	b.raw = cloneRaw(data)
	return nil
}

func cloneRaw(b []byte) json.RawMessage {
	if b == nil {
		return nil
	}
	return append(json.RawMessage(nil), b...)
}

func marshalRaw(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return []byte("null"), nil
	}
	return raw, nil
}
