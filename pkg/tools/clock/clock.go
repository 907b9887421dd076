// Package clock implements the get_time tool.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools"
)

// DefaultFormat is used when the caller omits the format argument.
const DefaultFormat = "full"

// Tool reports the current wall-clock time in a requested zone and format.
type Tool struct {
	handle mcp.Tool

	// now is swappable for tests.
	now func() time.Time
}

// New creates the get_time tool.
func New() *Tool {
	return &Tool{
		handle: mcp.NewTool(
			"get_time",
			mcp.WithDescription("Returns the current time, optionally in a specific IANA time zone."),
			mcp.WithString("timeZone",
				mcp.Description("IANA time zone name, e.g. Asia/Seoul. Defaults to the system zone."),
			),
			mcp.WithString("format",
				mcp.Description("Rendering format. Default: full. The iso format always renders UTC."),
				mcp.Enum("full", "date", "time", "iso"),
			),
		),
		now: time.Now,
	}
}

// Handle returns the tool descriptor.
func (t *Tool) Handle() mcp.Tool {
	return t.handle
}

// Handler renders the current time. An unknown zone name is a domain
// failure; the iso format ignores the zone entirely and renders UTC.
func (t *Tool) Handler(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	format := tools.StringArgOr(args, "format", DefaultFormat)
	zoneName := tools.StringArg(args, "timeZone")

	if format == "iso" {
		return mcp.NewToolResultText(t.now().UTC().Format(time.RFC3339)), nil
	}

	location := time.Local
	label := "system zone"
	if zoneName != "" {
		loc, err := time.LoadLocation(zoneName)
		if err != nil {
			return nil, registry.Domainf("unknown time zone %q", zoneName)
		}
		location = loc
		label = zoneName
	}

	now := t.now().In(location)
	var rendered string
	switch format {
	case "date":
		rendered = now.Format("January 2, 2006")
	case "time":
		rendered = now.Format("3:04:05 PM")
	default:
		rendered = now.Format("Monday, January 2, 2006 3:04:05 PM MST")
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)", rendered, label)), nil
}
