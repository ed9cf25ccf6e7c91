package result

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

func TestGetSemanticsIDResult_RoundTrip(t *testing.T) {
	want := GetSemanticsIDResult{ID: 7}

	got, err := GetSemanticsIDResultFromJSON(want.ToJSON())
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetSemanticsIDResult_ThroughJSON(t *testing.T) {
	data, err := json.Marshal(GetSemanticsIDResult{ID: 7}.ToJSON())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"id":7}` {
		t.Errorf("json = %s, want {\"id\":7}", data)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got, err := GetSemanticsIDResultFromJSON(m)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
}

func TestGetSemanticsIDResult_Errors(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]interface{}
		want error
	}{
		{"missing", map[string]interface{}{}, core.ErrMissingKey},
		{"fractional", map[string]interface{}{"id": 1.5}, core.ErrInvalidValue},
		{"string", map[string]interface{}{"id": "7"}, core.ErrInvalidValue},
		{"bad number", map[string]interface{}{"id": json.Number("7.2")}, core.ErrInvalidValue},
		{"float out of range", map[string]interface{}{"id": 1e300}, core.ErrInvalidValue},
		{"negative float out of range", map[string]interface{}{"id": -1e300}, core.ErrInvalidValue},
		{"number out of range", map[string]interface{}{"id": json.Number("1e300")}, core.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetSemanticsIDResultFromJSON(tt.m)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResults_RoundTrip(t *testing.T) {
	tests := []struct {
		kind string
		r    Result
	}{
		{"get_semantics_id", GetSemanticsIDResult{ID: 12}},
		{"get_text", GetTextResult{Text: "Hello"}},
		{"get_offset", GetOffsetResult{DX: 10.5, DY: -2}},
		{"request_data", RequestDataResult{Message: "pong"}},
		{"get_health", Health{Status: HealthOK}},
		{"tap", Empty{}},
		{"waitFor", Empty{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := Decode(tt.kind, tt.r.ToJSON())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.r {
				t.Errorf("got %#v, want %#v", got, tt.r)
			}
		})
	}
}

func TestDecode_UnknownKind(t *testing.T) {
	if _, err := Decode("shake", nil); !errors.Is(err, core.ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
}

func TestHealthFromJSON_UnknownStatus(t *testing.T) {
	if _, err := HealthFromJSON(map[string]interface{}{"status": "meh"}); !errors.Is(err, core.ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestParseResponse(t *testing.T) {
	payload, err := ParseResponse([]byte(`{"isError":false,"response":{"id":42}}`))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if payload["id"] != json.Number("42") {
		t.Errorf("id = %#v, want json.Number(42)", payload["id"])
	}
}

func TestParseResponse_NullResponse(t *testing.T) {
	payload, err := ParseResponse([]byte(`{"isError":false,"response":null}`))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty", payload)
	}
}

func TestParseResponse_RemoteError(t *testing.T) {
	_, err := ParseResponse([]byte(`{"isError":true,"response":"Found 2 widgets with text \"x\""}`))
	if !errors.Is(err, core.ErrRemote) {
		t.Fatalf("error = %v, want ErrRemote", err)
	}
	if !strings.Contains(err.Error(), "Found 2 widgets") {
		t.Errorf("error = %q, should carry the remote message", err.Error())
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []string{
		`not json`,
		`{"isError":false,"response":"a string"}`,
	}
	for _, data := range tests {
		if _, err := ParseResponse([]byte(data)); !errors.Is(err, core.ErrMalformedJSON) {
			t.Errorf("ParseResponse(%s) error = %v, want ErrMalformedJSON", data, err)
		}
	}
}

func TestDecodeResponse(t *testing.T) {
	r, err := DecodeResponse("get_semantics_id", []byte(`{"isError":false,"response":{"id":7}}`))
	if err != nil {
		t.Fatalf("DecodeResponse() error = %v", err)
	}
	if r != (GetSemanticsIDResult{ID: 7}) {
		t.Errorf("got %#v, want GetSemanticsIDResult{ID: 7}", r)
	}

	_, err = DecodeResponse("get_text", []byte(`{"isError":false,"response":{}}`))
	if !errors.Is(err, core.ErrMissingKey) {
		t.Errorf("error = %v, want ErrMissingKey", err)
	}
}
