package bookwyrm

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

// Tools returns the BookWyrm tool set backed by client.
func Tools(client *Client) []*mcpkit.Tool {
	usernameSchema := mcpkit.ObjectSchema(map[string]mcpkit.Prop{
		"username": mcpkit.StringProp("BookWyrm username"),
	}, "username")

	return []*mcpkit.Tool{
		{
			Tool: mcp.Tool{
				Name:        "search_bookwyrm_books",
				Description: "Search BookWyrm for books matching a query. Returns the instance's search results (title, key, author, year, cover, confidence).",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"query": mcpkit.StringProp("Title, author or ISBN to search for"),
				}, "query"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				query, err := mcpkit.ReadString(args, "query", true)
				if err != nil {
					return nil, err
				}
				body, err := client.SearchBooks(ctx, query)
				if err != nil {
					return nil, err
				}
				return mcpkit.RawJSONResult(body), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "get_user_read_books_shelf_info",
				Description: "Get a user's \"read\" shelf as an ActivityPub collection, including metadata and the list of books.",
				InputSchema: usernameSchema,
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				username, err := mcpkit.ReadString(args, "username", true)
				if err != nil {
					return nil, err
				}
				body, err := client.ReadShelf(ctx, username)
				if err != nil {
					return nil, err
				}
				return mcpkit.RawJSONResult(body), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "get_user_reviews",
				Description: "Get a user's reviews with book title, author, rating and review text.",
				InputSchema: usernameSchema,
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				username, err := mcpkit.ReadString(args, "username", true)
				if err != nil {
					return nil, err
				}
				body, err := client.ReviewsPage(ctx, username)
				if err != nil {
					return nil, err
				}
				reviews, err := ParseReviews(body)
				if err != nil {
					return nil, mcpkit.Internal(err, "parsing reviews for %s", username)
				}
				zerolog.Ctx(ctx).Debug().Int("reviews", len(reviews)).Msg("Parsed BookWyrm reviews")
				return mcpkit.JSONResult(reviews), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "get_user_read_books_from_url",
				Description: "Get one page of the books a user has marked as read, with title and author.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"username": mcpkit.StringProp("BookWyrm username"),
					"page":     mcpkit.IntProp("Page of the read list to fetch", 1),
				}, "username"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				username, err := mcpkit.ReadString(args, "username", true)
				if err != nil {
					return nil, err
				}
				page, err := mcpkit.ReadIntDefault(args, "page", 1)
				if err != nil {
					return nil, err
				}
				if page < 1 {
					return nil, mcpkit.InvalidParams("page must be 1 or greater")
				}
				body, err := client.ReadBooksPage(ctx, username, page)
				if err != nil {
					return nil, err
				}
				books, err := ParseReadBooks(body)
				if err != nil {
					return nil, mcpkit.Internal(err, "parsing read books for %s", username)
				}
				return mcpkit.JSONResult(books), nil
			},
		},
	}
}
