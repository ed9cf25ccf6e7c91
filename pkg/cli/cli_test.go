package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/devicelab-dev/flutter-driver/pkg/config"
	"github.com/devicelab-dev/flutter-driver/pkg/core"
)

// runApp runs the CLI with args and stdin, returning stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FLUTTER_DRIVER_HOME", t.TempDir())
	config.ResetHome()
	t.Cleanup(config.ResetHome)

	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"flutter-driver"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeLines(t *testing.T, out string) []map[string]string {
	t.Helper()
	var maps []map[string]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]string
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not a wire map: %v", line, err)
		}
		maps = append(maps, m)
	}
	return maps
}

func TestGlobalFlags(t *testing.T) {
	names := map[string]bool{}
	for _, f := range GlobalFlags {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	for _, want := range []string{"config", "log-file", "verbose", "pretty", "timeout"} {
		if !names[want] {
			t.Errorf("missing global flag %q", want)
		}
	}
}

func TestEncode(t *testing.T) {
	path := writeFile(t, "login.yaml", `
- waitFor:
    key: 42
- tap: Login
`)
	out, err := runApp(t, "", "encode", path)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}

	got := decodeLines(t, out)
	want := []map[string]string{
		{"kind": "waitFor", "finderType": "ByValueKey", "keyValueString": "42", "keyValueType": "int", "index": "0"},
		{"kind": "tap", "finderType": "ByText", "text": "Login", "index": "0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncode_DefaultTimeout(t *testing.T) {
	path := writeFile(t, "flow.yaml", `
- tap: OK
- getHealth:
    timeout: 100
`)
	out, err := runApp(t, "", "--timeout", "5000", "encode", path)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}

	got := decodeLines(t, out)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0]["timeout"] != "5000" {
		t.Errorf("tap timeout = %q, want default 5000", got[0]["timeout"])
	}
	if got[1]["timeout"] != "100" {
		t.Errorf("getHealth timeout = %q, want explicit 100", got[1]["timeout"])
	}
}

func TestEncode_TimeoutFromConfig(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "defaultTimeoutMs: 250\npretty: true\n")
	path := writeFile(t, "flow.yaml", "- getHealth\n")

	out, err := runApp(t, "", "--config", cfgPath, "encode", path)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}

	var m map[string]string
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output %q is not JSON: %v", out, err)
	}
	if m["timeout"] != "250" {
		t.Errorf("timeout = %q, want 250", m["timeout"])
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented output, got %q", out)
	}
}

func TestEncode_Errors(t *testing.T) {
	if _, err := runApp(t, "", "encode"); err == nil {
		t.Error("expected error without script arguments")
	}

	bad := writeFile(t, "bad.yaml", "- tap:\n    key: 1.5\n")
	_, err := runApp(t, "", "encode", bad)
	if !errors.Is(err, core.ErrInvalidKeyValueType) {
		t.Errorf("error = %v, want ErrInvalidKeyValueType", err)
	}
}

func TestEncode_NegativeTimeoutRejected(t *testing.T) {
	path := writeFile(t, "flow.yaml", "- getHealth\n")
	_, err := runApp(t, "", "--timeout", "-1", "encode", path)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestDecode_Stdin(t *testing.T) {
	in := `[
  {"kind":"tap","finderType":"ByText","text":"OK","index":"0","timeout":"5000"},
  {"kind":"enter_text","text":"hi"}
]`
	out, err := runApp(t, in, "decode")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}

	want := "tap text=\"OK\" (timeout 5s)\nenter_text \"hi\"\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestDecode_FileSingleObject(t *testing.T) {
	path := writeFile(t, "cmd.json", `{"kind":"get_health"}`)
	out, err := runApp(t, "", "decode", path)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if strings.TrimSpace(out) != "get_health" {
		t.Errorf("output = %q, want get_health", out)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *core.ProtocolError
	}{
		{"empty", "  ", core.ErrMalformedJSON},
		{"not json", "{", core.ErrMalformedJSON},
		{"non-string values", `{"kind":"tap","index":0}`, core.ErrMalformedJSON},
		{"unknown kind", `{"kind":"shake"}`, core.ErrUnknownCommand},
		{"missing kind", `{"text":"x"}`, core.ErrMissingKey},
		{"unknown finder", `{"kind":"tap","finderType":"ByColor"}`, core.ErrUnknownFinderType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.input, "decode")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %s", err, tt.want.Code)
			}
		})
	}
}

func TestResult(t *testing.T) {
	out, err := runApp(t, `{"isError":false,"response":{"text":"Welcome"}}`, "result", "--kind", "get_text")
	if err != nil {
		t.Fatalf("result error = %v", err)
	}
	if strings.TrimSpace(out) != `{"text":"Welcome"}` {
		t.Errorf("output = %q", out)
	}
}

func TestResult_RemoteError(t *testing.T) {
	_, err := runApp(t, `{"isError":true,"response":"Timeout while waiting"}`, "result", "--kind", "tap")
	if !errors.Is(err, core.ErrRemote) {
		t.Fatalf("error = %v, want ErrRemote", err)
	}
	if !strings.Contains(err.Error(), "Timeout while waiting") {
		t.Errorf("error = %q, should carry the remote message", err.Error())
	}
}

func TestFinders(t *testing.T) {
	out, err := runApp(t, "", "finders")
	if err != nil {
		t.Fatalf("finders error = %v", err)
	}
	for _, want := range []string{"ByValueKey", "Descendant", "PageBack", "get_semantics_id", "waitForTappable"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "driver.log")
	path := writeFile(t, "flow.yaml", "- getHealth\n")

	if _, err := runApp(t, "", "--log-file", logPath, "encode", path); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "encoding 1 commands") {
		t.Errorf("log = %q", string(data))
	}
}

func TestEncode_Directory(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.yaml": "- tap: A\n",
		"b.yaml": "- tap: B\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := runApp(t, "", "encode", dir)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	got := decodeLines(t, out)
	if len(got) != 2 || got[0]["text"] != "A" || got[1]["text"] != "B" {
		t.Errorf("got %v, want taps on A then B", got)
	}
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "flow.yaml", "- tap: OK\n- getHealth\n")
	out, err := runApp(t, "", "validate", path)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, `tap text="OK"`) || !strings.Contains(out, "1 scripts, 2 commands OK") {
		t.Errorf("output = %q", out)
	}
}

func TestValidate_PrintsNothingOnError(t *testing.T) {
	good := writeFile(t, "good.yaml", "- tap: OK\n")
	bad := writeFile(t, "bad.yaml", "- shake\n")

	out, err := runApp(t, "", "encode", good, bad)
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
	if !strings.Contains(err.Error(), "unknown step type: shake") {
		t.Errorf("error = %v", err)
	}
}
