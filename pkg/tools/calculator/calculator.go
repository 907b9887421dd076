// Package calculator implements the four-function calculator tool.
package calculator

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools"
)

// symbols maps an operation to the symbol used in the result text.
var symbols = map[string]string{
	"add":      "+",
	"subtract": "-",
	"multiply": "×",
	"divide":   "÷",
}

// Tool performs basic floating-point arithmetic.
type Tool struct {
	handle mcp.Tool
}

// New creates the calculator tool.
func New() *Tool {
	return &Tool{
		handle: mcp.NewTool(
			"calculator",
			mcp.WithDescription("Performs basic arithmetic on two numbers."),
			mcp.WithString("operation",
				mcp.Required(),
				mcp.Description("Arithmetic operation to perform."),
				mcp.Enum("add", "subtract", "multiply", "divide"),
			),
			mcp.WithNumber("a",
				mcp.Required(),
				mcp.Description("First operand."),
			),
			mcp.WithNumber("b",
				mcp.Required(),
				mcp.Description("Second operand."),
			),
		),
	}
}

// Handle returns the tool descriptor.
func (t *Tool) Handle() mcp.Tool {
	return t.handle
}

// Handler computes the result. Division by zero is the one domain failure.
func (t *Tool) Handler(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	operation := tools.StringArg(args, "operation")
	a := tools.NumberArg(args, "a")
	b := tools.NumberArg(args, "b")

	var result float64
	switch operation {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return nil, registry.Domainf("division by zero is not allowed")
		}
		result = a / b
	}

	return mcp.NewToolResultText(fmt.Sprintf("%g %s %g = %g", a, symbols[operation], b, result)), nil
}
