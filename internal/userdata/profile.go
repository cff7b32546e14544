package userdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Profile is a raw provider profile as decoded from the provider's JSON
// API. Its shape varies per provider; normalizers read from it by path.
type Profile map[string]any

// DecodeProfile decodes a JSON object body into a Profile. Numbers are
// kept as json.Number so identifiers never lose precision.
func DecodeProfile(endpoint string, raw []byte) (Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{
			Endpoint: endpoint,
			Err:      errors.New("trailing data after json object"),
		}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{
			Endpoint: endpoint,
			Err:      errors.New("response is not a json object"),
		}
	}

	return Profile(obj), nil
}

// Value walks nested objects along path. A numeric segment indexes into
// a JSON array. The second result is false when any step is missing.
func (p Profile) Value(path ...string) (any, bool) {
	var cur any = map[string]any(p)
	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// String returns the value at path when it is a JSON string or number,
// nil otherwise.
func (p Profile) String(path ...string) *string {
	v, ok := p.Value(path...)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return &s
	case json.Number:
		str := s.String()
		return &str
	}
	return nil
}

// Object returns the nested object at path, or nil.
func (p Profile) Object(path ...string) Profile {
	v, ok := p.Value(path...)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Profile(m)
	}
	return nil
}

// Without returns a shallow copy of the profile with keys removed. The
// result is never nil.
func (p Profile) Without(keys ...string) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
