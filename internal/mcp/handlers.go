package mcp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/hpungsan/optom/internal/config"
	"github.com/hpungsan/optom/internal/errors"
	"github.com/hpungsan/optom/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{cfg: cfg, log: logger}
}

// Request types for each tool

// RxParseRequest represents the arguments for rx_parse.
type RxParseRequest struct {
	Rx string `json:"rx" validate:"required"`
}

// RxTransposeRequest represents the arguments for rx_transpose.
type RxTransposeRequest struct {
	Rx   string `json:"rx" validate:"required"`
	Flag string `json:"flag,omitempty"`
}

// VAParseRequest represents the arguments for va_parse.
type VAParseRequest struct {
	VA string `json:"va" validate:"required"`
}

// VAConvertRequest represents the arguments for va_convert.
type VAConvertRequest struct {
	VA   string `json:"va" validate:"required"`
	Unit string `json:"unit" validate:"required"`
}

// Handler implementations

// HandleRxParse handles the rx_parse tool call.
func (h *Handlers) HandleRxParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call("rx_parse", func() (any, error) {
		input, err := decode[RxParseRequest](req)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		return ops.ParseRx(ops.ParseRxInput{Text: input.Rx})
	})
}

// HandleRxTranspose handles the rx_transpose tool call.
func (h *Handlers) HandleRxTranspose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call("rx_transpose", func() (any, error) {
		input, err := decode[RxTransposeRequest](req)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		return ops.TransposeRx(h.cfg, ops.TransposeRxInput{Text: input.Rx, Flag: input.Flag})
	})
}

// HandleVAParse handles the va_parse tool call.
func (h *Handlers) HandleVAParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call("va_parse", func() (any, error) {
		input, err := decode[VAParseRequest](req)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		return ops.ParseVA(h.cfg, ops.ParseVAInput{Text: input.VA})
	})
}

// HandleVAConvert handles the va_convert tool call.
func (h *Handlers) HandleVAConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call("va_convert", func() (any, error) {
		input, err := decode[VAConvertRequest](req)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		return ops.ConvertVA(ops.ConvertVAInput{Text: input.VA, Unit: input.Unit})
	})
}

// call runs fn under a fresh call id and logs the outcome.
func (h *Handlers) call(tool string, fn func() (any, error)) (*mcp.CallToolResult, error) {
	callID := newCallID()
	start := time.Now()

	result, err := fn()

	evt := h.log.Debug()
	if err != nil {
		evt = h.log.Info()
		if oErr, ok := err.(*errors.OptomError); ok {
			evt = evt.Str("code", string(oErr.Code))
		}
		evt = evt.Err(err)
	}
	evt.
		Str("call_id", callID).
		Str("tool", tool).
		Dur("latency", time.Since(start)).
		Msg("tool call")

	if err != nil {
		return errorResult(err, callID), nil
	}
	return successResult(result)
}

func newCallID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error, callID string) *mcp.CallToolResult {
	var errorObj map[string]any

	if oErr, ok := err.(*errors.OptomError); ok && oErr.Code != errors.ErrInternal {
		errorObj = map[string]any{
			"code":    oErr.Code,
			"message": oErr.Message,
		}
		// fmt keeps NaN/Inf values representable in JSON
		if oErr.Value != nil {
			errorObj["value"] = fmt.Sprint(oErr.Value)
		}
		if oErr.Details != nil {
			errorObj["details"] = oErr.Details
		}
	} else {
		errorObj = map[string]any{
			"code":    errors.ErrInternal,
			"message": "an internal error occurred",
		}
	}
	errorObj["call_id"] = callID

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
