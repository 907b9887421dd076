package calculator

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
)

func textOf(result *mcp.CallToolResult) string {
	content, ok := result.Content[0].(mcp.TextContent)
	So(ok, ShouldBeTrue)
	return content.Text
}

func TestCalculatorTool(t *testing.T) {
	Convey("Given the calculator tool", t, func() {
		tool := New()
		call := func(operation string, a, b float64) (*mcp.CallToolResult, error) {
			return tool.Handler(context.Background(), map[string]any{
				"operation": operation,
				"a":         a,
				"b":         b,
			})
		}

		Convey("All four operations return the textbook result", func() {
			cases := []struct {
				operation string
				a, b      float64
				want      string
			}{
				{"add", 1, 2, "1 + 2 = 3"},
				{"subtract", 10, 4, "10 - 4 = 6"},
				{"multiply", 6, 7, "6 × 7 = 42"},
				{"divide", 9, 2, "9 ÷ 2 = 4.5"},
				{"add", 0.5, 0.25, "0.5 + 0.25 = 0.75"},
				{"subtract", 2, 5, "2 - 5 = -3"},
			}
			for _, c := range cases {
				result, err := call(c.operation, c.a, c.b)
				So(err, ShouldBeNil)
				So(textOf(result), ShouldEqual, c.want)
			}
		})

		Convey("Division by zero is a domain failure for every numerator", func() {
			for _, a := range []float64{0, 1, -3, 1e9} {
				_, err := call("divide", a, 0)
				So(err, ShouldNotBeNil)
				var domainErr *registry.DomainError
				So(errors.As(err, &domainErr), ShouldBeTrue)
			}
		})

		Convey("Dividing zero by a nonzero number is fine", func() {
			result, err := call("divide", 0, 4)
			So(err, ShouldBeNil)
			So(textOf(result), ShouldEqual, "0 ÷ 4 = 0")
		})
	})
}
