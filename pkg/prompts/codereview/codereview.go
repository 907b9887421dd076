// Package codereview implements the code_review prompt: pure template
// rendering that embeds the submitted code in a fenced block together with a
// review rubric for a downstream model. The code is never executed here.
package codereview

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
)

// DefaultFocus is used when the caller omits the focus argument.
const DefaultFocus = "all"

// FocusValues enumerates the accepted focus areas.
var FocusValues = []string{"quality", "performance", "security", "style", "all"}

var rubric = map[string]string{
	"quality":     "Code quality: correctness, readability, maintainability and error handling.",
	"performance": "Performance: algorithmic complexity, allocations and unnecessary work.",
	"security":    "Security: input validation, injection risks and unsafe handling of data.",
	"style":       "Style: naming, formatting and consistency with the language's conventions.",
}

// Prompt returns the prompt descriptor.
func Prompt() mcp.Prompt {
	return mcp.NewPrompt(
		"code_review",
		mcp.WithPromptDescription("Builds a code review request for a downstream model."),
		mcp.WithArgument("code",
			mcp.ArgumentDescription("The code to review."),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("language",
			mcp.ArgumentDescription("Programming language of the code, used to tag the fenced block."),
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Review focus area. Default: all."),
		),
	)
}

// Options returns the registration options constraining the focus argument.
func Options() []registry.PromptOption {
	return []registry.PromptOption{
		registry.WithPromptEnum("focus", FocusValues...),
	}
}

// Handler renders the single user-role review message.
func Handler(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	code := args["code"]
	language := args["language"]
	focus := args["focus"]
	if focus == "" {
		focus = DefaultFocus
	}

	var b strings.Builder
	b.WriteString("Please review the following code.\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, code)

	b.WriteString("Review the code against these criteria:\n")
	if focus == "all" {
		for _, area := range []string{"quality", "performance", "security", "style"} {
			b.WriteString("- " + rubric[area] + "\n")
		}
	} else {
		b.WriteString("- " + rubric[focus] + "\n")
	}
	b.WriteString("- Concrete suggestions for improvement.\n")
	b.WriteString("- Applicable best practices for this language and domain.\n")

	return mcp.NewGetPromptResult(
		"Code review request",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}
