package mcpkit

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(
		&Tool{
			Tool: mcp.Tool{
				Name:        "echo",
				Description: "Echo the message back.",
				InputSchema: ObjectSchema(map[string]Prop{
					"message": StringProp("Text to echo"),
				}, "message"),
			},
			Group: "test",
			Execute: func(_ context.Context, args map[string]any) (*Result, error) {
				msg, err := ReadString(args, "message", true)
				if err != nil {
					return nil, err
				}
				return TextResult(msg), nil
			},
		},
		&Tool{
			Tool:  mcp.Tool{Name: "missing"},
			Group: "test",
			Execute: func(context.Context, map[string]any) (*Result, error) {
				return nil, NotFound("user %q not found", "nobody")
			},
		},
		&Tool{
			Tool:  mcp.Tool{Name: "broken"},
			Group: "test",
			Execute: func(context.Context, map[string]any) (*Result, error) {
				return nil, errors.New("upstream exploded")
			},
		},
	)
	return reg
}

func connect(t *testing.T, reg *Registry) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := NewServer("test", "0.0.1", reg, zerolog.Nop())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServerListsRegisteredTools(t *testing.T) {
	session := connect(t, testRegistry())
	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"broken", "echo", "missing"}, names)
}

func TestServerCallToolText(t *testing.T) {
	session := connect(t, testRegistry())
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "echo",
		Arguments: map[string]any{"message": "hello"},
	})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "hello", text.Text)
}

func TestServerCallToolImage(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Tool{
		Tool:  mcp.Tool{Name: "snap"},
		Group: "test",
		Execute: func(context.Context, map[string]any) (*Result, error) {
			return ImageResult("saved", []byte{0x89, 'P', 'N', 'G'}, "image/png"), nil
		},
	})
	session := connect(t, reg)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "snap"})
	require.NoError(t, err)
	require.Len(t, res.Content, 2)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "saved", text.Text)
	img, ok := res.Content[1].(*mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img.Data)
}

func TestRegistryRegisterReplaces(t *testing.T) {
	reg := testRegistry()
	reg.Register(&Tool{
		Tool: mcp.Tool{Name: "echo"},
		Execute: func(context.Context, map[string]any) (*Result, error) {
			return TextResult("replaced"), nil
		},
	})
	assert.Equal(t, []string{"broken", "echo", "missing"}, reg.Names())
	res, err := reg.Call(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, "replaced", res.Text())
}

func TestServerMapsErrorCategories(t *testing.T) {
	session := connect(t, testRegistry())
	ctx := context.Background()

	cases := []struct {
		name string
		args map[string]any
		code int64
	}{
		{"echo", map[string]any{}, codeInvalidParams},
		{"missing", nil, codeNotFound},
		{"broken", nil, codeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.CallTool(ctx, &mcp.CallToolParams{Name: tc.name, Arguments: tc.args})
			require.Error(t, err)
			var rpcErr *jsonrpc.Error
			require.True(t, errors.As(err, &rpcErr), "expected *jsonrpc.Error, got %T", err)
			assert.Equal(t, tc.code, rpcErr.Code)
		})
	}
}

func TestToJSONRPCWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Internal(cause, "fetching shelf")
	assert.ErrorIs(t, err, cause)
	rpcErr := ToJSONRPC(err)
	assert.Equal(t, int64(codeInternal), rpcErr.Code)
	assert.Equal(t, "fetching shelf: dial tcp: timeout", rpcErr.Message)
}

func TestRegistryCallUnknownTool(t *testing.T) {
	_, err := testRegistry().Call(context.Background(), "nope", nil)
	assert.Equal(t, CategoryNotFound, CategoryOf(err))
}
