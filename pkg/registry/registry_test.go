package registry

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"
)

func echoTool() mcp.Tool {
	return mcp.NewTool(
		"echo",
		mcp.WithDescription("Echoes a message."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to echo."),
		),
		mcp.WithString("mode",
			mcp.Description("Echo mode."),
			mcp.Enum("plain", "loud"),
		),
	)
}

func textOf(result *mcp.CallToolResult) string {
	So(len(result.Content), ShouldBeGreaterThan, 0)
	content, ok := result.Content[0].(mcp.TextContent)
	So(ok, ShouldBeTrue)
	return content.Text
}

func TestRegistryTools(t *testing.T) {
	Convey("Given a registry with an echo tool", t, func() {
		reg := New("test-server", "0.0.1")
		var seen map[string]any
		err := reg.RegisterTool(echoTool(), func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
			seen = args
			return mcp.NewToolResultText(args["message"].(string)), nil
		})
		So(err, ShouldBeNil)

		Convey("Registering the same name again fails", func() {
			err := reg.RegisterTool(echoTool(), func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultText(""), nil
			})
			So(err, ShouldNotBeNil)
		})

		Convey("Dispatching an unknown tool returns a not_found error result", func() {
			result, err := reg.DispatchTool(context.Background(), "nope", nil)
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "not_found:")
		})

		Convey("A missing required argument never reaches the handler", func() {
			seen = nil
			result, err := reg.DispatchTool(context.Background(), "echo", map[string]any{})
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "invalid_argument:")
			So(textOf(result), ShouldContainSubstring, "message")
			So(seen, ShouldBeNil)
		})

		Convey("A wrongly typed argument never reaches the handler", func() {
			seen = nil
			result, err := reg.DispatchTool(context.Background(), "echo", map[string]any{"message": 42.0})
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "invalid_argument:")
			So(seen, ShouldBeNil)
		})

		Convey("An out-of-enum argument never reaches the handler", func() {
			seen = nil
			result, err := reg.DispatchTool(context.Background(), "echo", map[string]any{
				"message": "hi",
				"mode":    "whisper",
			})
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "invalid_argument:")
			So(textOf(result), ShouldContainSubstring, "mode")
			So(seen, ShouldBeNil)
		})

		Convey("Valid arguments are handed to the handler unchanged", func() {
			result, err := reg.DispatchTool(context.Background(), "echo", map[string]any{"message": "hello"})
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)
			So(textOf(result), ShouldEqual, "hello")
			So(seen["message"], ShouldEqual, "hello")
		})
	})
}

func TestRegistryErrorTranslation(t *testing.T) {
	Convey("Given tools failing with each taxonomy error", t, func() {
		reg := New("test-server", "0.0.1")
		fail := func(name string, err error) {
			tool := mcp.NewTool(name, mcp.WithDescription("always fails"))
			regErr := reg.RegisterTool(tool, func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
				return nil, err
			})
			So(regErr, ShouldBeNil)
		}
		fail("domain", Domainf("division by zero is not allowed"))
		fail("config", Configf("OPENAI_API_KEY is not set"))
		fail("generation", Generatef("endpoint unreachable"))

		Convey("DomainError maps to invalid_operation", func() {
			result, err := reg.DispatchTool(context.Background(), "domain", nil)
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "invalid_operation:")
		})

		Convey("ConfigError maps to missing_configuration", func() {
			result, err := reg.DispatchTool(context.Background(), "config", nil)
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "missing_configuration:")
		})

		Convey("GenerationError maps to generation_failed", func() {
			result, err := reg.DispatchTool(context.Background(), "generation", nil)
			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
			So(textOf(result), ShouldStartWith, "generation_failed:")
		})
	})
}

func TestRegistryResources(t *testing.T) {
	Convey("Given a registry with one resource", t, func() {
		reg := New("test-server", "0.0.1")
		resource := mcp.NewResource("test://thing", "thing", mcp.WithMIMEType("text/plain"))
		err := reg.RegisterResource(resource, func(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: "ok"},
			}, nil
		})
		So(err, ShouldBeNil)

		Convey("Reading it returns its contents", func() {
			contents, err := reg.ReadResource(context.Background(), "test://thing")
			So(err, ShouldBeNil)
			So(len(contents), ShouldEqual, 1)
			text, ok := contents[0].(mcp.TextResourceContents)
			So(ok, ShouldBeTrue)
			So(text.Text, ShouldEqual, "ok")
		})

		Convey("Reading an unknown URI is a not_found error", func() {
			_, err := reg.ReadResource(context.Background(), "test://other")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "not_found:")
		})

		Convey("Registering the same URI again fails", func() {
			err := reg.RegisterResource(resource, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRegistryPrompts(t *testing.T) {
	Convey("Given a registry with a constrained prompt", t, func() {
		reg := New("test-server", "0.0.1")
		prompt := mcp.NewPrompt(
			"review",
			mcp.WithPromptDescription("review something"),
			mcp.WithArgument("code", mcp.RequiredArgument()),
			mcp.WithArgument("focus"),
		)
		err := reg.RegisterPrompt(prompt, func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult("ok", []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(args["code"])),
			}), nil
		}, WithPromptEnum("focus", "quality", "style"))
		So(err, ShouldBeNil)

		Convey("Rendering with valid arguments returns the handler's messages", func() {
			result, err := reg.RenderPrompt(context.Background(), "review", map[string]string{
				"code":  "package main",
				"focus": "style",
			})
			So(err, ShouldBeNil)
			So(len(result.Messages), ShouldEqual, 1)
		})

		Convey("A missing required argument fails validation", func() {
			_, err := reg.RenderPrompt(context.Background(), "review", map[string]string{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "invalid_argument:")
			So(err.Error(), ShouldContainSubstring, "code")
		})

		Convey("An out-of-enum argument fails validation", func() {
			_, err := reg.RenderPrompt(context.Background(), "review", map[string]string{
				"code":  "package main",
				"focus": "vibes",
			})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "invalid_argument:")
			So(err.Error(), ShouldContainSubstring, "focus")
		})

		Convey("An unknown prompt is a not_found error", func() {
			_, err := reg.RenderPrompt(context.Background(), "missing", nil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "not_found:")
		})
	})
}

func TestRegistryEnumeration(t *testing.T) {
	Convey("Given a registry with several capabilities", t, func() {
		reg := New("test-server", "0.0.1")
		for _, name := range []string{"zeta", "alpha", "mid"} {
			err := reg.RegisterTool(mcp.NewTool(name), func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
				return mcp.NewToolResultText(""), nil
			})
			So(err, ShouldBeNil)
		}

		Convey("Tools are enumerated sorted by name", func() {
			tools := reg.Tools()
			So(len(tools), ShouldEqual, 3)
			So(tools[0].Name, ShouldEqual, "alpha")
			So(tools[1].Name, ShouldEqual, "mid")
			So(tools[2].Name, ShouldEqual, "zeta")
		})
	})
}
