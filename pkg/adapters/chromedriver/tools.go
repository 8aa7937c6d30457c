// Package chromedriver drives a single Chromium session over the DevTools protocol.
package chromedriver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

var (
	locatorProp = mcpkit.StringProp("The locator value, for example an element ID, XPath expression or CSS selector")
	byProp      = mcpkit.EnumProp("The locator strategy", strategyNames()...)
)

func textTool(name, description string, props map[string]mcpkit.Prop, required []string, run func(ctx context.Context, args map[string]any) (string, error)) *mcpkit.Tool {
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(props, required...),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			text, err := run(ctx, args)
			if err != nil {
				return nil, err
			}
			return mcpkit.TextResult(text), nil
		},
	}
}

func readLocator(args map[string]any) (by, locator string, err error) {
	if locator, err = mcpkit.ReadString(args, "locator", true); err != nil {
		return
	}
	by, err = mcpkit.ReadString(args, "by", true)
	return
}

// locatorTool is a tool whose only inputs are a locator and its strategy.
func locatorTool(name, description string, run func(ctx context.Context, by, locator string) string) *mcpkit.Tool {
	props := map[string]mcpkit.Prop{"locator": locatorProp, "by": byProp}
	return textTool(name, description, props, []string{"locator", "by"}, func(ctx context.Context, args map[string]any) (string, error) {
		by, locator, err := readLocator(args)
		if err != nil {
			return "", err
		}
		return run(ctx, by, locator), nil
	})
}

// locatorValueTool takes a locator plus one extra required string.
func locatorValueTool(name, description, key string, prop mcpkit.Prop, run func(ctx context.Context, by, locator, value string) string) *mcpkit.Tool {
	props := map[string]mcpkit.Prop{"locator": locatorProp, "by": byProp, key: prop}
	return textTool(name, description, props, []string{"locator", "by", key}, func(ctx context.Context, args map[string]any) (string, error) {
		by, locator, err := readLocator(args)
		if err != nil {
			return "", err
		}
		value, ok := args[key].(string)
		if !ok {
			return "", mcpkit.InvalidParams("parameter %q must be a string", key)
		}
		return run(ctx, by, locator, value), nil
	})
}

func Tools(m *Manager) []*mcpkit.Tool {
	urlProps := map[string]mcpkit.Prop{"url": mcpkit.StringProp("The URL to open")}
	return []*mcpkit.Tool{
		textTool("launch_browser", "Launches a Chromium browser with a persistent profile and opens the given URL.",
			map[string]mcpkit.Prop{
				"url":      mcpkit.StringProp("The URL to open"),
				"headless": mcpkit.BoolProp("Run the browser without a window", false),
			}, []string{"url"},
			func(ctx context.Context, args map[string]any) (string, error) {
				url, err := mcpkit.ReadString(args, "url", true)
				if err != nil {
					return "", err
				}
				return m.Launch(ctx, url, mcpkit.ReadBool(args, "headless", false)), nil
			}),
		textTool("goto_page", "Navigates the current tab to the given URL.", urlProps, []string{"url"},
			func(ctx context.Context, args map[string]any) (string, error) {
				url, err := mcpkit.ReadString(args, "url", true)
				if err != nil {
					return "", err
				}
				return m.Goto(ctx, url), nil
			}),
		textTool("close_browser", "Closes the browser session.", nil, nil,
			func(ctx context.Context, _ map[string]any) (string, error) {
				return m.CloseBrowser(ctx), nil
			}),
		textTool("get_page_source", "Returns the HTML source of the current page, optionally converted to Markdown.",
			map[string]mcpkit.Prop{
				"clean_with_html2text": mcpkit.BoolProp("Convert the HTML to Markdown text", false),
			}, nil,
			func(ctx context.Context, args map[string]any) (string, error) {
				return m.PageSource(ctx, mcpkit.ReadBool(args, "clean_with_html2text", false)), nil
			}),
		textTool("execute_javascript", "Executes JavaScript in the current page. Use return to produce a result.",
			map[string]mcpkit.Prop{"script": mcpkit.StringProp("The JavaScript function body to run")}, []string{"script"},
			func(ctx context.Context, args map[string]any) (string, error) {
				script, err := mcpkit.ReadString(args, "script", true)
				if err != nil {
					return "", err
				}
				return m.ExecuteJavaScript(ctx, script), nil
			}),
		{
			Tool: mcp.Tool{
				Name:        "take_screenshot",
				Description: "Saves a screenshot of the current page into the download directory.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"filename": mcpkit.StringProp("File name for the screenshot (default screenshot.png)"),
				}),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				msg, data := m.Screenshot(ctx, mcpkit.ReadStringDefault(args, "filename", DefaultScreenshot))
				if data == nil {
					return mcpkit.TextResult(msg), nil
				}
				return mcpkit.ImageResult(msg, data, "image/png"), nil
			},
		},
		locatorTool("find_element", "Finds an element and returns its text.", m.ElementText),
		locatorTool("get_element_text", "Returns the visible text of an element.", m.ElementText),
		locatorTool("click_element", "Clicks an element.", m.Click),
		locatorValueTool("type_into_element", "Types text into an element.", "text",
			mcpkit.StringProp("The text to type"), m.Type),
		locatorTool("clear_element_text", "Clears the text of an input element.", m.Clear),
		textTool("scroll", "Scrolls the page by the given offsets in pixels.",
			map[string]mcpkit.Prop{
				"delta_x": mcpkit.IntProp("Horizontal offset in pixels", 0),
				"delta_y": mcpkit.IntProp("Vertical offset in pixels", 0),
			}, nil,
			func(ctx context.Context, args map[string]any) (string, error) {
				dx, err := mcpkit.ReadIntDefault(args, "delta_x", 0)
				if err != nil {
					return "", err
				}
				dy, err := mcpkit.ReadIntDefault(args, "delta_y", 0)
				if err != nil {
					return "", err
				}
				return m.Scroll(ctx, dx, dy), nil
			}),
		textTool("get_browser_stats", "Returns page metadata, navigation timing, cookies and viewport information as JSON.", nil, nil,
			func(ctx context.Context, _ map[string]any) (string, error) {
				return m.Stats(ctx), nil
			}),
		locatorValueTool("get_element_attribute", "Returns the value of an attribute on an element.", "attribute",
			mcpkit.StringProp("The attribute name"), m.Attribute),
		locatorTool("get_elements", "Returns the text and attributes of every matching element as JSON.", m.Elements),
		locatorTool("submit_form", "Submits a form element.", m.Submit),
		textTool("wait_for_element", "Waits until an element is present on the page.",
			map[string]mcpkit.Prop{
				"by":      byProp,
				"locator": locatorProp,
				"timeout": mcpkit.IntProp("Maximum time to wait in seconds", 10),
			}, []string{"by", "locator", "timeout"},
			func(ctx context.Context, args map[string]any) (string, error) {
				by, locator, err := readLocator(args)
				if err != nil {
					return "", err
				}
				timeout, err := mcpkit.ReadInt(args, "timeout", true)
				if err != nil {
					return "", err
				} else if timeout < 0 {
					return "", mcpkit.InvalidParams("timeout must not be negative")
				}
				return m.WaitFor(ctx, by, locator, timeout), nil
			}),
		locatorValueTool("select_option", "Selects an option by value in a select element.", "value",
			mcpkit.StringProp("The option value to select"), m.SelectOption),
		locatorValueTool("upload_file", "Sets the file of a file input element.", "file_path",
			mcpkit.StringProp("Path of the local file to upload"), m.UploadFile),
		textTool("open_new_tab", "Opens a new tab with the given URL and switches to it.", urlProps, []string{"url"},
			func(ctx context.Context, args map[string]any) (string, error) {
				url, err := mcpkit.ReadString(args, "url", true)
				if err != nil {
					return "", err
				}
				return m.OpenTab(ctx, url), nil
			}),
		textTool("switch_to_tab", "Switches to the tab with the given zero-based index.",
			map[string]mcpkit.Prop{"index": {"type": "integer", "description": "Zero-based tab index"}}, []string{"index"},
			func(ctx context.Context, args map[string]any) (string, error) {
				index, err := mcpkit.ReadInt(args, "index", true)
				if err != nil {
					return "", err
				}
				return m.SwitchTab(ctx, index), nil
			}),
		textTool("close_tab", "Closes the current tab.", nil, nil,
			func(ctx context.Context, _ map[string]any) (string, error) {
				return m.CloseTab(ctx), nil
			}),
		locatorTool("switch_to_frame", "Switches element lookups into an iframe.", m.SwitchToFrame),
		textTool("get_current_tab_index", "Returns the index of the current tab.", nil, nil,
			func(context.Context, map[string]any) (string, error) {
				return m.CurrentTab(), nil
			}),
	}
}
