package mcpkit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// NewServer builds an MCP server exposing every tool in reg.
func NewServer(name, version string, reg *Registry, log zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)
	for _, tool := range reg.All() {
		mcpTool := tool.Tool
		if mcpTool.InputSchema == nil {
			mcpTool.InputSchema = ObjectSchema(nil)
		}
		server.AddTool(&mcpTool, toolHandler(tool, log))
	}
	return server
}

// Serve runs server over stdio until the client disconnects or ctx is done.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func toolHandler(tool *Tool, log zerolog.Logger) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callLog := log.With().
			Str("tool", tool.Name).
			Str("group", tool.Group).
			Str("request_id", xid.New().String()).
			Logger()
		ctx = callLog.WithContext(ctx)

		args, err := decodeArguments(req)
		if err != nil {
			callLog.Warn().Err(err).Msg("Rejected tool call with malformed arguments")
			return nil, ToJSONRPC(err)
		}

		start := time.Now()
		result, err := tool.Execute(ctx, args)
		took := time.Since(start)
		if err != nil {
			category := CategoryOf(err)
			evt := callLog.Error()
			if category != CategoryInternal {
				evt = callLog.Warn()
			}
			evt.Err(err).
				Stringer("category", category).
				Dur("took", took).
				Msg("Tool call failed")
			return nil, ToJSONRPC(err)
		}
		callLog.Debug().
			Int("blocks", len(result.Content)).
			Dur("took", took).
			Msg("Tool call finished")
		return toCallToolResult(result), nil
	}
}

func decodeArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	args := map[string]any{}
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, InvalidParams("arguments must be a JSON object: %v", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func toCallToolResult(result *Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{}
	if result == nil {
		out.Content = []mcp.Content{&mcp.TextContent{Text: ""}}
		return out
	}
	for _, block := range result.Content {
		switch block.Type {
		case "image":
			out.Content = append(out.Content, &mcp.ImageContent{Data: block.Data, MIMEType: block.MimeType})
		default:
			out.Content = append(out.Content, &mcp.TextContent{Text: block.Text})
		}
	}
	if len(out.Content) == 0 {
		out.Content = []mcp.Content{&mcp.TextContent{Text: ""}}
	}
	return out
}
