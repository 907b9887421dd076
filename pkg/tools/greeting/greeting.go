// Package greeting implements the greeting tool.
package greeting

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools"
)

// DefaultLanguage is used when the caller omits the language argument.
const DefaultLanguage = "ko"

// templates maps a language code to its salutation template. The schema
// restricts the language argument to exactly these keys.
var templates = map[string]string{
	"ko": "안녕하세요, %s님! 👋",
	"en": "Hello, %s! 👋",
	"ja": "こんにちは、%sさん！👋",
}

// Tool greets a person in Korean, English or Japanese.
type Tool struct {
	handle mcp.Tool
}

// New creates the greeting tool.
func New() *Tool {
	return &Tool{
		handle: mcp.NewTool(
			"greeting",
			mcp.WithDescription("Greets a person in the requested language."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name of the person to greet."),
			),
			mcp.WithString("language",
				mcp.Description("Language of the greeting. Default: ko."),
				mcp.Enum("ko", "en", "ja"),
			),
		),
	}
}

// Handle returns the tool descriptor.
func (t *Tool) Handle() mcp.Tool {
	return t.handle
}

// Handler renders the greeting. There is no failure path: the schema
// guarantees name is present and language is one of the enumerated values.
func (t *Tool) Handler(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	name := tools.StringArg(args, "name")
	language := tools.StringArgOr(args, "language", DefaultLanguage)

	return mcp.NewToolResultText(fmt.Sprintf(templates[language], name)), nil
}
