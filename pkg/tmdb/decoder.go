package tmdb

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
)

// RawResponse holds the top level fields of a decoded response, each kept
// as undecoded JSON until the merger knows what shape to expect.
type RawResponse map[string]json.RawMessage

// Decoder turns wire payloads into the structures the merger consumes.
type Decoder interface {
	// Decode splits a JSON object into its top level fields.
	Decode(data []byte) (RawResponse, error)
	// Unmarshal decodes one value into v.
	Unmarshal(data []byte, v interface{}) error
}

// JSONDecoder is the default Decoder.
type JSONDecoder struct{}

var errNotObject = errors.New("response body is not a JSON object")

func (JSONDecoder) Decode(data []byte) (RawResponse, error) {
	var raw RawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errNotObject
	}
	return raw, nil
}

func (JSONDecoder) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func isNull(data json.RawMessage) bool {
	return len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null"
}
