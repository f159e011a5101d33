package mcpserver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/domain"
)

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }

// parseJSON parses a JSON string argument into target.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// groupArg reads "group", defaulting to the template.
func groupArg(args map[string]any) (domain.Group, error) {
	raw, _ := args["group"].(string)
	if raw == "" {
		return domain.GroupTemplate, nil
	}
	return domain.ParseGroup(raw)
}

func pageTypeArg(args map[string]any) (domain.PageType, error) {
	raw, _ := args["pageType"].(string)
	if raw == "" {
		return "", fmt.Errorf("pageType is required")
	}
	return domain.ParsePageType(raw)
}

// intArg reads a whole number. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
