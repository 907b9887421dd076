// Package image implements the generate_image tool, the one capability that
// leaves the process: it calls the OpenAI Images API and returns the result
// as a base64 PNG content block.
package image

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/config"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools"
)

// Tool generates an image from a text prompt via the OpenAI Images API.
type Tool struct {
	handle mcp.Tool
	cfg    *config.Config

	// allow guards the outbound call with a token bucket so a chatty client
	// cannot burn through the inference quota.
	allow func(ctx context.Context, key string) bool
}

// New creates the generate_image tool.
func New(cfg *config.Config) *Tool {
	limiter := ratelimit.New(&ratelimit.Config{
		Rate:     5,
		Burst:    5,
		Interval: time.Minute,
	})

	return &Tool{
		handle: mcp.NewTool(
			"generate_image",
			mcp.WithDescription("Generates an image from a text prompt using OpenAI."),
			mcp.WithString("prompt",
				mcp.Required(),
				mcp.Description("Text description of the image to generate."),
			),
		),
		cfg:   cfg,
		allow: limiter.Allow,
	}
}

// Handle returns the tool descriptor.
func (t *Tool) Handle() mcp.Tool {
	return t.handle
}

// Handler performs the external call. A missing credential is a
// configuration failure regardless of the prompt; everything the endpoint
// or transport throws is wrapped into a single generation failure.
func (t *Tool) Handler(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	if t.cfg.OpenAI.APIKey == "" {
		return nil, registry.Configf("OPENAI_API_KEY is not set")
	}

	if !t.allow(ctx, "generate_image") {
		return nil, registry.Generatef("image generation rate limit exceeded, retry later")
	}

	prompt := tools.StringArg(args, "prompt")

	client := openai.NewClient(option.WithAPIKey(t.cfg.OpenAI.APIKey))
	response, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         openai.F(prompt),
		Model:          openai.F(openai.ImageModel(t.cfg.OpenAI.ImageModel)),
		Size:           openai.F(openai.ImageGenerateParamsSize(t.cfg.OpenAI.ImageSize)),
		ResponseFormat: openai.F(openai.ImageGenerateParamsResponseFormatB64JSON),
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, &registry.GenerationError{Err: err}
	}
	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return nil, registry.Generatef("the endpoint returned no image data")
	}

	return mcp.NewToolResultImage(
		"Generated image for prompt: "+prompt,
		response.Data[0].B64JSON,
		"image/png",
	), nil
}
