package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/hpungsan/optom/internal/config"
)

// testSetup returns handlers writing debug logs into the returned buffer.
func testSetup(t *testing.T, cfg *config.Config) (*Handlers, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return NewHandlers(cfg, logger), &buf
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestHandleRxParse(t *testing.T) {
	h, _ := testSetup(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
		wantText  string
	}{
		{
			name:     "full prescription",
			args:     map[string]any{"rx": "+1.00/-0.50x90"},
			wantText: "+1.00 / -0.50 x 90",
		},
		{
			name:     "plano sphere",
			args:     map[string]any{"rx": "pl/-1.00x180"},
			wantText: "plano / -1.00 x 180",
		},
		{
			name:      "missing rx",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "blank rx",
			args:      map[string]any{"rx": "   "},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "wrong argument type",
			args:      map[string]any{"rx": 12},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "two slashes",
			args:      map[string]any{"rx": "+1.00/-0.50/x90"},
			wantError: true,
			errorCode: "PARSE_ERROR",
		},
		{
			name:      "axis out of range",
			args:      map[string]any{"rx": "+1.00/-0.50x181"},
			wantError: true,
			errorCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleRxParse(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Fatalf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}
			payload := decodePayload(t, result)
			if payload["text"] != tt.wantText {
				t.Errorf("text = %v, want %q", payload["text"], tt.wantText)
			}
		})
	}
}

func TestHandleRxTranspose(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		cfg        *config.Config
		args       map[string]any
		wantError  bool
		errorCode  string
		wantAfter  string
		transposed bool
	}{
		{
			name:       "no flag",
			args:       map[string]any{"rx": "+1.00/-0.75x180"},
			wantAfter:  "+0.25 / +0.75 x 90",
			transposed: true,
		},
		{
			name:       "p flag on plus cylinder",
			args:       map[string]any{"rx": "+1.00/+0.75x45", "flag": "p"},
			wantAfter:  "+1.00 / +0.75 x 45",
			transposed: false,
		},
		{
			name:       "configured form",
			cfg:        &config.Config{CylinderForm: "n"},
			args:       map[string]any{"rx": "+1.00/+0.75x100"},
			wantAfter:  "+1.75 / -0.75 x 10",
			transposed: true,
		},
		{
			name:      "unknown flag",
			args:      map[string]any{"rx": "+1.00/+0.75x45", "flag": "x"},
			wantError: true,
			errorCode: "INVALID_ARGUMENT",
		},
		{
			name:      "missing rx",
			args:      map[string]any{"flag": "n"},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := testSetup(t, tt.cfg)
			result, err := h.HandleRxTranspose(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Fatalf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}
			payload := decodePayload(t, result)
			after, ok := payload["after"].(map[string]any)
			if !ok {
				t.Fatalf("no after object in payload: %v", payload)
			}
			if after["text"] != tt.wantAfter {
				t.Errorf("after.text = %v, want %q", after["text"], tt.wantAfter)
			}
			if payload["transposed"] != tt.transposed {
				t.Errorf("transposed = %v, want %v", payload["transposed"], tt.transposed)
			}
		})
	}
}

func TestHandleVAParse(t *testing.T) {
	h, _ := testSetup(t, nil)
	ctx := context.Background()

	result, err := h.HandleVAParse(ctx, makeRequest(map[string]any{"va": "20/40"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	payload := decodePayload(t, result)
	if payload["unit"] != "ft" {
		t.Errorf("unit = %v, want ft", payload["unit"])
	}
	if payload["decimal"] != 0.5 {
		t.Errorf("decimal = %v, want 0.5", payload["decimal"])
	}
	if payload["metres"] != "6/12" {
		t.Errorf("metres = %v, want 6/12", payload["metres"])
	}

	result, err = h.HandleVAParse(ctx, makeRequest(map[string]any{"va": "6"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "PARSE_ERROR")
}

func TestHandleVAConvert(t *testing.T) {
	h, _ := testSetup(t, nil)
	ctx := context.Background()

	tests := []struct {
		name        string
		args        map[string]any
		wantError   bool
		errorCode   string
		wantSnellen string
	}{
		{name: "m to ft", args: map[string]any{"va": "6/6", "unit": "ft"}, wantSnellen: "20/20"},
		{name: "ft to m", args: map[string]any{"va": "20/200", "unit": "m"}, wantSnellen: "6/61"},
		{name: "missing unit", args: map[string]any{"va": "6/6"}, wantError: true, errorCode: "INVALID_REQUEST"},
		{name: "bad unit", args: map[string]any{"va": "6/6", "unit": "yd"}, wantError: true, errorCode: "INVALID_ARGUMENT"},
		{name: "zero after rounding", args: map[string]any{"va": "20/1", "unit": "m"}, wantError: true, errorCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleVAConvert(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Fatalf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}
			payload := decodePayload(t, result)
			if payload["snellen"] != tt.wantSnellen {
				t.Errorf("snellen = %v, want %q", payload["snellen"], tt.wantSnellen)
			}
		})
	}
}

func TestErrorResult_CarriesCallID(t *testing.T) {
	h, logs := testSetup(t, nil)

	result, err := h.HandleRxParse(context.Background(), makeRequest(map[string]any{"rx": "1/2/3"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	errorObj := decodeErrorObject(t, result)
	callID, ok := errorObj["call_id"].(string)
	if !ok {
		t.Fatalf("no call_id in error object")
	}
	if _, err := ulid.Parse(callID); err != nil {
		t.Errorf("call_id %q is not a ULID: %v", callID, err)
	}
	if errorObj["message"] != "Only one '/' can be parsed." {
		t.Errorf("message = %v", errorObj["message"])
	}

	var entry map[string]any
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log line: %v", err)
	}
	if entry["call_id"] != callID {
		t.Errorf("logged call_id = %v, want %q", entry["call_id"], callID)
	}
	if entry["tool"] != "rx_parse" {
		t.Errorf("logged tool = %v", entry["tool"])
	}
	if entry["code"] != "PARSE_ERROR" {
		t.Errorf("logged code = %v", entry["code"])
	}
}

func TestErrorResult_NonFiniteValue(t *testing.T) {
	h, _ := testSetup(t, nil)

	result, err := h.HandleRxParse(context.Background(), makeRequest(map[string]any{"rx": "inf"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	errorObj := decodeErrorObject(t, result)
	if errorObj["code"] != "VALIDATION_ERROR" {
		t.Errorf("code = %v, want VALIDATION_ERROR", errorObj["code"])
	}
	if errorObj["value"] != "+Inf" {
		t.Errorf("value = %v, want +Inf", errorObj["value"])
	}
}

func TestGetTypeForTool(t *testing.T) {
	tests := []struct {
		tool string
		want string
	}{
		{"rx_parse", "rx"},
		{"rx_transpose", "rx"},
		{"va_convert", "va"},
		{"noprefix", ""},
		{"_leading", ""},
	}

	for _, tt := range tests {
		if got := GetTypeForTool(tt.tool); got != tt.want {
			t.Errorf("GetTypeForTool(%q) = %q, want %q", tt.tool, got, tt.want)
		}
	}
}

func TestExpandTypesToTools(t *testing.T) {
	got := ExpandTypesToTools([]string{"va"})
	sort.Strings(got)
	want := []string{"va_convert", "va_parse"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ExpandTypesToTools(va) = %v, want %v", got, want)
	}

	if got := ExpandTypesToTools(nil); got != nil {
		t.Errorf("ExpandTypesToTools(nil) = %v, want nil", got)
	}
}

func TestValidateDisabled(t *testing.T) {
	if unknown := ValidateDisabledTools([]string{"rx_parse", "rx_store"}); len(unknown) != 1 || unknown[0] != "rx_store" {
		t.Errorf("ValidateDisabledTools = %v", unknown)
	}
	if unknown := ValidateDisabledTypes([]string{"va", "lens"}); len(unknown) != 1 || unknown[0] != "lens" {
		t.Errorf("ValidateDisabledTypes = %v", unknown)
	}
}

func TestEnabledTools(t *testing.T) {
	cfg := &config.Config{
		DisabledTools: []string{"va_convert"},
		DisabledTypes: []string{"rx"},
	}

	got := EnabledTools(cfg)
	if len(got) != 1 || got[0] != "va_parse" {
		t.Errorf("EnabledTools = %v, want [va_parse]", got)
	}

	if got := EnabledTools(config.DefaultConfig()); len(got) != len(AllToolNames()) {
		t.Errorf("EnabledTools(default) = %v, want all tools", got)
	}
}

func TestNewServer(t *testing.T) {
	s := NewServer(config.DefaultConfig(), zerolog.Nop(), "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func decodePayload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatalf("no content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not TextContent")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	return payload
}

func decodeErrorObject(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if !result.IsError {
		t.Fatalf("expected error result, got success")
	}
	errorObj, ok := decodePayload(t, result)["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in payload")
	}
	return errorObj
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	code, ok := decodeErrorObject(t, result)["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
