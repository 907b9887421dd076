// Package info implements the server://info resource: a read-only JSON
// snapshot of the server identity, every registered capability, and live
// process metrics. The snapshot is computed on every read; nothing is cached.
package info

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
)

// URI is the fixed address of the info resource.
const URI = "server://info"

// Resource returns the resource descriptor.
func Resource() mcp.Resource {
	return mcp.NewResource(
		URI,
		"Server Information",
		mcp.WithResourceDescription("Identity, registered capabilities and live process metrics of this server."),
		mcp.WithMIMEType("application/json"),
	)
}

type parameterInfo struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  []parameterInfo `json:"parameters"`
}

type resourceInfo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

type promptInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Arguments   []string `json:"arguments,omitempty"`
}

type metrics struct {
	GoVersion     string `json:"goVersion"`
	PID           int    `json:"pid"`
	Goroutines    int    `json:"goroutines"`
	HeapAllocByte uint64 `json:"heapAllocBytes"`
	HeapSysByte   uint64 `json:"heapSysBytes"`
	Uptime        string `json:"uptime"`
	Timestamp     string `json:"timestamp"`
}

type snapshot struct {
	Name      string         `json:"name"`
	Version   string         `json:"version"`
	Tools     []toolInfo     `json:"tools"`
	Resources []resourceInfo `json:"resources"`
	Prompts   []promptInfo   `json:"prompts"`
	Metrics   metrics        `json:"metrics"`
}

// Handler builds the resource handler over the registry the server was
// assembled with.
func Handler(reg *registry.Registry) registry.ResourceHandler {
	return func(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
		raw, err := json.MarshalIndent(build(reg), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode info snapshot: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(raw),
			},
		}, nil
	}
}

func build(reg *registry.Registry) snapshot {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	out := snapshot{
		Name:    reg.Name(),
		Version: reg.Version(),
		Metrics: metrics{
			GoVersion:     runtime.Version(),
			PID:           os.Getpid(),
			Goroutines:    runtime.NumGoroutine(),
			HeapAllocByte: stats.HeapAlloc,
			HeapSysByte:   stats.HeapSys,
			Uptime:        reg.Uptime().Round(time.Second).String(),
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		},
	}

	for _, tool := range reg.Tools() {
		out.Tools = append(out.Tools, toolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  parameters(tool),
		})
	}
	for _, resource := range reg.Resources() {
		out.Resources = append(out.Resources, resourceInfo{
			URI:         resource.URI,
			Name:        resource.Name,
			Description: resource.Description,
			MIMEType:    resource.MIMEType,
		})
	}
	for _, prompt := range reg.Prompts() {
		info := promptInfo{Name: prompt.Name, Description: prompt.Description}
		for _, arg := range prompt.Arguments {
			info.Arguments = append(info.Arguments, arg.Name)
		}
		out.Prompts = append(out.Prompts, info)
	}

	return out
}

// parameters flattens a tool's declared input schema into a summary list.
func parameters(tool mcp.Tool) []parameterInfo {
	required := make(map[string]bool, len(tool.InputSchema.Required))
	for _, name := range tool.InputSchema.Required {
		required[name] = true
	}

	params := make([]parameterInfo, 0, len(tool.InputSchema.Properties))
	for name, raw := range tool.InputSchema.Properties {
		param := parameterInfo{Name: name, Required: required[name]}
		if property, ok := raw.(map[string]any); ok {
			param.Type, _ = property["type"].(string)
			param.Description, _ = property["description"].(string)
			if values, ok := property["enum"].([]string); ok {
				param.Enum = values
			} else if values, ok := property["enum"].([]any); ok {
				for _, value := range values {
					if s, ok := value.(string); ok {
						param.Enum = append(param.Enum, s)
					}
				}
			}
		}
		params = append(params, param)
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}
