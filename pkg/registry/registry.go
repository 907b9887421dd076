// Package registry holds the capability descriptors the server exposes and
// owns request dispatch: argument validation against the declared schemas,
// handler invocation, and translation of handler failures into protocol
// error responses. The registry is built once at startup and never mutated
// while serving.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Category identifies one of the three capability kinds.
type Category string

const (
	CategoryTool     Category = "tool"
	CategoryResource Category = "resource"
	CategoryPrompt   Category = "prompt"
)

// ToolHandler executes a tool with an argument bag that has already passed
// schema validation. Failures are reported through the error taxonomy in
// this package; the dispatcher renders them into the protocol envelope.
type ToolHandler func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// ResourceHandler reads a resource by URI.
type ResourceHandler func(ctx context.Context, uri string) ([]mcp.ResourceContents, error)

// PromptHandler renders a prompt with validated string arguments.
type PromptHandler func(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error)

type toolEntry struct {
	tool    mcp.Tool
	schema  *jsonschema.Schema
	handler ToolHandler
}

type resourceEntry struct {
	resource mcp.Resource
	handler  ResourceHandler
}

type promptEntry struct {
	prompt  mcp.Prompt
	enums   map[string][]string
	handler PromptHandler
}

// Registry is the process-wide capability mapping. Construct with New,
// register everything, then Attach to the server; no registration after that.
type Registry struct {
	name      string
	version   string
	startedAt time.Time

	tools     map[string]toolEntry
	resources map[string]resourceEntry
	prompts   map[string]promptEntry
}

// New builds an empty registry carrying the server identity.
func New(name, version string) *Registry {
	return &Registry{
		name:      name,
		version:   version,
		startedAt: time.Now(),
		tools:     make(map[string]toolEntry),
		resources: make(map[string]resourceEntry),
		prompts:   make(map[string]promptEntry),
	}
}

// Name returns the server name the registry was built with.
func (r *Registry) Name() string { return r.name }

// Version returns the server version the registry was built with.
func (r *Registry) Version() string { return r.version }

// Uptime reports how long ago the registry was constructed.
func (r *Registry) Uptime() time.Duration { return time.Since(r.startedAt) }

// RegisterTool adds a tool descriptor. The declared input schema is compiled
// once here; a duplicate name within the tool category is an error.
func (r *Registry) RegisterTool(tool mcp.Tool, handler ToolHandler) error {
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %q is already registered", tool.Name)
	}
	schema, err := compileSchema(tool.Name, tool.InputSchema)
	if err != nil {
		return err
	}
	r.tools[tool.Name] = toolEntry{tool: tool, schema: schema, handler: handler}
	return nil
}

// RegisterResource adds a resource descriptor, keyed by URI.
func (r *Registry) RegisterResource(resource mcp.Resource, handler ResourceHandler) error {
	if _, exists := r.resources[resource.URI]; exists {
		return fmt.Errorf("resource %q is already registered", resource.URI)
	}
	r.resources[resource.URI] = resourceEntry{resource: resource, handler: handler}
	return nil
}

// PromptOption configures prompt registration.
type PromptOption func(*promptEntry)

// WithPromptEnum restricts a prompt argument to an enumerated set of values.
func WithPromptEnum(arg string, values ...string) PromptOption {
	return func(e *promptEntry) {
		if e.enums == nil {
			e.enums = make(map[string][]string)
		}
		e.enums[arg] = values
	}
}

// RegisterPrompt adds a prompt descriptor.
func (r *Registry) RegisterPrompt(prompt mcp.Prompt, handler PromptHandler, opts ...PromptOption) error {
	if _, exists := r.prompts[prompt.Name]; exists {
		return fmt.Errorf("prompt %q is already registered", prompt.Name)
	}
	entry := promptEntry{prompt: prompt, handler: handler}
	for _, opt := range opts {
		opt(&entry)
	}
	r.prompts[prompt.Name] = entry
	return nil
}

// DispatchTool resolves a tool by name, validates the argument bag against
// the tool's schema, and invokes the handler. Handler-level failures come
// back as protocol error results, never as process failures.
func (r *Registry) DispatchTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	logger := log.With("category", CategoryTool, "name", name, "request_id", uuid.NewString())

	entry, ok := r.tools[name]
	if !ok {
		err := &NotFoundError{Category: CategoryTool, Name: name}
		logger.Warn("dispatch failed", "error", err)
		return errorResult(err), nil
	}

	if err := validateArgs(entry.schema, args); err != nil {
		logger.Warn("argument validation failed", "error", err)
		return errorResult(err), nil
	}

	result, err := entry.handler(ctx, args)
	if err != nil {
		logger.Error("tool failed", "error", err)
		return errorResult(err), nil
	}
	logger.Debug("tool dispatched")
	return result, nil
}

// ReadResource resolves a resource by URI and invokes its handler.
func (r *Registry) ReadResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	logger := log.With("category", CategoryResource, "uri", uri, "request_id", uuid.NewString())

	entry, ok := r.resources[uri]
	if !ok {
		err := &NotFoundError{Category: CategoryResource, Name: uri}
		logger.Warn("read failed", "error", err)
		return nil, protocolError(err)
	}

	contents, err := entry.handler(ctx, uri)
	if err != nil {
		logger.Error("resource failed", "error", err)
		return nil, protocolError(err)
	}
	return contents, nil
}

// RenderPrompt resolves a prompt by name, validates its arguments, and
// invokes the template handler.
func (r *Registry) RenderPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	logger := log.With("category", CategoryPrompt, "name", name, "request_id", uuid.NewString())

	entry, ok := r.prompts[name]
	if !ok {
		err := &NotFoundError{Category: CategoryPrompt, Name: name}
		logger.Warn("render failed", "error", err)
		return nil, protocolError(err)
	}

	if err := validatePromptArgs(entry, args); err != nil {
		logger.Warn("argument validation failed", "error", err)
		return nil, protocolError(err)
	}

	result, err := entry.handler(ctx, args)
	if err != nil {
		logger.Error("prompt failed", "error", err)
		return nil, protocolError(err)
	}
	return result, nil
}

// Attach wires every registered capability into the MCP server. Requests
// arriving through the server flow back through the dispatch methods above.
func (r *Registry) Attach(s *server.MCPServer) {
	for name, entry := range r.tools {
		name := name
		s.AddTool(entry.tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return r.DispatchTool(ctx, name, request.Params.Arguments)
		})
	}
	for _, entry := range r.resources {
		s.AddResource(entry.resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return r.ReadResource(ctx, request.Params.URI)
		})
	}
	for name, entry := range r.prompts {
		name := name
		s.AddPrompt(entry.prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return r.RenderPrompt(ctx, name, request.Params.Arguments)
		})
	}
}

// Tools returns the registered tool descriptors, sorted by name.
func (r *Registry) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(r.tools))
	for _, entry := range r.tools {
		tools = append(tools, entry.tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// Resources returns the registered resource descriptors, sorted by URI.
func (r *Registry) Resources() []mcp.Resource {
	resources := make([]mcp.Resource, 0, len(r.resources))
	for _, entry := range r.resources {
		resources = append(resources, entry.resource)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].URI < resources[j].URI })
	return resources
}

// Prompts returns the registered prompt descriptors, sorted by name.
func (r *Registry) Prompts() []mcp.Prompt {
	prompts := make([]mcp.Prompt, 0, len(r.prompts))
	for _, entry := range r.prompts {
		prompts = append(prompts, entry.prompt)
	}
	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })
	return prompts
}

func validatePromptArgs(entry promptEntry, args map[string]string) error {
	var missing []string
	for _, arg := range entry.prompt.Arguments {
		if !arg.Required {
			continue
		}
		if args[arg.Name] == "" {
			missing = append(missing, arg.Name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, message: "missing required arguments"}
	}

	for argName, allowed := range entry.enums {
		value, ok := args[argName]
		if !ok || value == "" {
			continue
		}
		valid := false
		for _, candidate := range allowed {
			if value == candidate {
				valid = true
				break
			}
		}
		if !valid {
			return &ValidationError{
				Fields:  []string{argName},
				message: fmt.Sprintf("value %q is not one of the allowed values", value),
			}
		}
	}
	return nil
}

// errorResult renders a taxonomy error as a tool error result with a stable
// machine-readable prefix, mirroring the protocol's in-band tool errors.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(prefixed(err))
}

// protocolError renders a taxonomy error for the categories that report
// failures through the transport error envelope instead of a result payload.
func protocolError(err error) error {
	return errors.New(prefixed(err))
}

func prefixed(err error) string {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		domain     *DomainError
		config     *ConfigError
		generation *GenerationError
	)
	switch {
	case errors.As(err, &validation):
		return "invalid_argument: " + err.Error()
	case errors.As(err, &notFound):
		return "not_found: " + err.Error()
	case errors.As(err, &domain):
		return "invalid_operation: " + err.Error()
	case errors.As(err, &config):
		return "missing_configuration: " + err.Error()
	case errors.As(err, &generation):
		return "generation_failed: " + err.Error()
	default:
		return "internal_error: " + err.Error()
	}
}
