// Package tools defines the interface every capability tool implements and
// shared helpers for pulling typed values out of validated argument bags.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is the contract between a capability implementation and the registry.
type Tool interface {
	// Handle returns the tool's declared descriptor, including its input schema.
	Handle() mcp.Tool

	// Handler executes the tool with a schema-validated argument bag.
	Handler(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)
}

// StringArg returns a string argument, or the empty string when absent.
// Arguments reach handlers only after schema validation, so a present value
// has the declared type.
func StringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// StringArgOr returns a string argument, falling back to def when the
// argument is absent or empty.
func StringArgOr(args map[string]any, key, def string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return def
}

// NumberArg returns a numeric argument. JSON numbers arrive as float64.
func NumberArg(args map[string]any, key string) float64 {
	value, _ := args[key].(float64)
	return value
}
