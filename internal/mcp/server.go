package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/hpungsan/optom/internal/config"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"rx", "va"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"rx_parse": {
		def:     rxParseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRxParse },
	},
	"rx_transpose": {
		def:     rxTransposeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRxTranspose },
	},
	"va_parse": {
		def:     vaParseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVAParse },
	},
	"va_convert": {
		def:     vaConvertToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVAConvert },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "rx_parse" → "rx").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		if typeSet[GetTypeForTool(name)] {
			tools = append(tools, name)
		}
	}
	return tools
}

// EnabledTools returns the registry names left after removing the tools and
// types disabled in cfg.
func EnabledTools(cfg *config.Config) []string {
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	enabled := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		if !disabled[name] {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// NewServer creates a new MCP server with optom tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(cfg *config.Config, logger zerolog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"optom",
		version,
		server.WithToolCapabilities(true),
	)

	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		logger.Warn().Str("tool", name).Msg("unknown tool in disabled_tools")
	}
	for _, name := range ValidateDisabledTypes(cfg.DisabledTypes) {
		logger.Warn().Str("type", name).Msg("unknown type in disabled_types")
	}

	h := NewHandlers(cfg, logger)
	for _, name := range EnabledTools(cfg) {
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cfg *config.Config, logger zerolog.Logger, version string) error {
	s := NewServer(cfg, logger, version)
	logger.Info().Str("version", version).Msg("mcp server starting")
	return server.ServeStdio(s)
}
