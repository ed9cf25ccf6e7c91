package result

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// Response is the envelope the driver extension wraps every reply in.
type Response struct {
	IsError  bool            `json:"isError"`
	Response json.RawMessage `json:"response"`
}

// ParseResponse decodes the envelope. A remote failure is returned as an
// ErrRemote error carrying the remote message; otherwise the response
// object is returned with numbers preserved as json.Number.
func ParseResponse(data []byte) (map[string]interface{}, error) {
	var env Response
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, core.ErrMalformedJSON.WithMessage("malformed response envelope").WithCause(err)
	}

	if env.IsError {
		return nil, core.ErrRemote.
			WithMessage(remoteMessage(env.Response)).
			WithDetails(map[string]interface{}{"response": string(env.Response)})
	}

	payload := map[string]interface{}{}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return payload, nil
	}
	dec := json.NewDecoder(bytes.NewReader(env.Response))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, core.ErrMalformedJSON.WithMessage("response is not an object").WithCause(err)
	}
	return payload, nil
}

// DecodeResponse parses the envelope and builds the result for kind.
func DecodeResponse(kind string, data []byte) (Result, error) {
	payload, err := ParseResponse(data)
	if err != nil {
		return nil, err
	}
	r, err := Decode(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("%s result: %w", kind, err)
	}
	return r, nil
}

func remoteMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return core.ErrRemote.Message
}
