// Package vollama describes images with a vision model served by Ollama.
package vollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client downloads images and asks the vision model about them.
type Client struct {
	cfg      *Config
	api      openai.Client
	download *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	api := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(time.Duration(cfg.TimeoutSecs)*time.Second),
		option.WithMaxRetries(0),
	)
	return &Client{
		cfg:      cfg,
		api:      api,
		download: httputil.NewClient(DefaultDownloadTimeout, downloadUserAgent),
	}
}

// buildImageUserMessage pairs the prompt with the image as a single user turn.
func buildImageUserMessage(prompt, imageURL string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
					{OfText: &openai.ChatCompletionContentPartTextParam{Text: prompt}},
					{OfImageURL: &openai.ChatCompletionContentPartImageParam{
						ImageURL: openai.ChatCompletionContentPartImageImageURLParam{URL: imageURL},
					}},
				},
			},
		},
	}
}

// ProcessImage returns the model's answer, or a human-readable failure message.
// Failures are reported as text so the caller can relay them verbatim.
func (c *Client) ProcessImage(ctx context.Context, imageURL, prompt string) string {
	log := zerolog.Ctx(ctx)
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		return "Invalid image URL. Must start with http:// or https://"
	}

	resp, err := c.download.Get(ctx, imageURL, nil)
	if err != nil {
		return fmt.Sprintf("Error downloading image: %v", err)
	}
	log.Debug().Str("content_type", resp.ContentType).Int("bytes", len(resp.Body)).Msg("Downloaded image")
	if !strings.HasPrefix(resp.ContentType, "image/") {
		return fmt.Sprintf("Invalid content type: %s. URL must point to an image.", resp.Header.Get("Content-Type"))
	}

	img, err := PrepareImage(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error processing image: cannot identify image file. %v", err)
	}

	if c.cfg.BaseURL == "" {
		return "OLLAMA_BASE_URL environment variable not set."
	}
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(DefaultSystemPrompt),
			buildImageUserMessage(prompt, img.DataURI()),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.Warn().Int("status", apiErr.StatusCode).Msg("Vision model request failed")
		}
		return fmt.Sprintf("Error processing image: %v", err)
	}
	if len(completion.Choices) == 0 {
		return "Error processing image: model returned no choices"
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content)
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{{
		Tool: mcp.Tool{
			Name:        "process_image",
			Description: "Processes an image from a URL using a local Ollama vision model and returns the text response.",
			InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
				"image_url": mcpkit.StringProp("The URL of the image"),
				"prompt":    mcpkit.StringProp("The prompt to send to the model"),
			}, "image_url", "prompt"),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			imageURL, err := mcpkit.ReadString(args, "image_url", true)
			if err != nil {
				return nil, err
			}
			prompt, err := mcpkit.ReadString(args, "prompt", true)
			if err != nil {
				return nil, err
			}
			return mcpkit.TextResult(client.ProcessImage(ctx, imageURL, prompt)), nil
		},
	}}
}
