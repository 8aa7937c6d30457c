// Package terminalshop exposes the Terminal coffee shop API.
package terminalshop

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

type noArgCall func(ctx context.Context) (json.RawMessage, error)

type idCall func(ctx context.Context, id string) (json.RawMessage, error)

func noArgTool(name, description string, call noArgCall) *mcpkit.Tool {
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(nil),
		},
		Group: Name,
		Execute: func(ctx context.Context, _ map[string]any) (*mcpkit.Result, error) {
			data, err := call(ctx)
			if err != nil {
				return nil, err
			}
			return mcpkit.RawJSONResult(data), nil
		},
	}
}

func idTool(name, description, param, paramDescription string, call idCall) *mcpkit.Tool {
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
				param: mcpkit.StringProp(paramDescription),
			}, param),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			id, err := mcpkit.ReadString(args, param, true)
			if err != nil {
				return nil, err
			}
			data, err := call(ctx, id)
			if err != nil {
				return nil, err
			}
			return mcpkit.RawJSONResult(data), nil
		},
	}
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{
		noArgTool("list_products", "Lists all products for sale in the Terminal shop.", client.ListProducts),
		idTool("get_product", "Gets a product by ID from the Terminal shop.", "product_id", "ID of the product to get", client.GetProduct),
		noArgTool("list_tokens", "Lists the current user's personal access tokens.", client.ListTokens),
		idTool("get_token", "Gets a personal access token by ID.", "token_id", "ID of the token to get", client.GetToken),
		noArgTool("create_token", "Creates a new personal access token.", client.CreateToken),
		idTool("delete_token", "Deletes a personal access token by ID.", "token_id", "ID of the token to delete", client.DeleteToken),
		noArgTool("get_profile", "Gets the current user's profile.", client.GetProfile),
		{
			Tool: mcp.Tool{
				Name:        "update_profile",
				Description: "Updates the current user's profile. Omitted fields are left unchanged.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"email": mcpkit.StringProp("New email address"),
					"name":  mcpkit.StringProp("New display name"),
				}),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				email, err := mcpkit.ReadString(args, "email", false)
				if err != nil {
					return nil, err
				}
				name, err := mcpkit.ReadString(args, "name", false)
				if err != nil {
					return nil, err
				}
				data, err := client.UpdateProfile(ctx, NewProfileUpdate(email, name))
				if err != nil {
					return nil, err
				}
				return mcpkit.RawJSONResult(data), nil
			},
		},
		noArgTool("list_addresses", "Lists the shipping addresses saved on the account.", client.ListAddresses),
		noArgTool("list_cards", "Lists the payment cards saved on the account.", client.ListCards),
		noArgTool("get_cart", "Gets the current contents of the shopping cart.", client.GetCart),
	}
}
