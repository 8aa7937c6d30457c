// Package doctl manages DigitalOcean droplets through the doctl CLI.
package doctl

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

const (
	defaultTries         = 10
	defaultSleepDuration = 10
)

func readDropletID(args map[string]any) (int, error) {
	id, err := mcpkit.ReadInt(args, "droplet_id", true)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, mcpkit.InvalidParams("droplet_id must be a positive integer.")
	}
	return id, nil
}

var dropletIDProp = mcpkit.Prop{"type": "integer", "description": "The ID of the droplet"}

func passthroughTool(client *Client, name, description string, args ...string) *mcpkit.Tool {
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(nil),
		},
		Group: Name,
		Execute: func(ctx context.Context, _ map[string]any) (*mcpkit.Result, error) {
			out, err := client.doctl(ctx, args...)
			if err != nil {
				return nil, err
			}
			return mcpkit.TextResult(out), nil
		},
	}
}

// dropletActionTool runs `doctl compute droplet-action <action> <id>` plus extra flags built from args.
func dropletActionTool(
	client *Client, name, description string, props map[string]mcpkit.Prop, required []string,
	build func(id int, args map[string]any) ([]string, string, error),
) *mcpkit.Tool {
	allProps := map[string]mcpkit.Prop{"droplet_id": dropletIDProp}
	for k, v := range props {
		allProps[k] = v
	}
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(allProps, append([]string{"droplet_id"}, required...)...),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			id, err := readDropletID(args)
			if err != nil {
				return nil, err
			}
			cmdArgs, confirmation, err := build(id, args)
			if err != nil {
				return nil, err
			}
			if _, err = client.doctl(ctx, cmdArgs...); err != nil {
				return nil, err
			}
			return mcpkit.TextResult(confirmation), nil
		},
	}
}

func Tools(client *Client) []*mcpkit.Tool {
	cfg := client.cfg
	return []*mcpkit.Tool{
		{
			Tool: mcp.Tool{
				Name:        "create_droplet",
				Description: "Creates a droplet and waits for it to become active. All fields can be left blank to use the defaults; a name is generated when omitted.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"name":    mcpkit.StringProp("The name of the droplet"),
					"region":  mcpkit.StringProp(fmt.Sprintf("The region for the droplet. Defaults to %q", cfg.Region)),
					"size":    mcpkit.StringProp(fmt.Sprintf("The size of the droplet. Defaults to %q", cfg.Size)),
					"image":   mcpkit.StringProp(fmt.Sprintf("The image for the droplet. Defaults to %q", cfg.Image)),
					"ssh_key": mcpkit.StringProp("The SSH key ID or fingerprint to install"),
				}),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				var opts CreateOptions
				for key, dst := range map[string]*string{
					"name": &opts.Name, "region": &opts.Region, "size": &opts.Size, "image": &opts.Image, "ssh_key": &opts.SSHKey,
				} {
					value, err := mcpkit.ReadString(args, key, false)
					if err != nil {
						return nil, err
					}
					*dst = value
				}
				name, err := client.CreateDroplet(ctx, opts)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(name), nil
			},
		},
		passthroughTool(client, "list_droplets", "Lists all droplets.", "compute", "droplet", "list"),
		passthroughTool(client, "list_available_images", "Lists all available public distribution images for creating droplets.",
			"compute", "image", "list-distribution", "--public"),
		passthroughTool(client, "list_available_regions", "Lists all available regions for creating droplets.", "compute", "region", "list"),
		passthroughTool(client, "list_available_sizes", "Lists all available sizes for creating droplets.", "compute", "size", "list"),
		passthroughTool(client, "oneclick_list_images", "Lists all available 1-click images.", "compute", "droplet", "1-click", "list"),
		passthroughTool(client, "get_droplet_limit", "Retrieves the account's droplet limit.", "account", "get", "--format", "DropletLimit"),
		{
			Tool: mcp.Tool{
				Name:        "delete_droplet",
				Description: "Deletes a droplet with the specified ID.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{"droplet_id": dropletIDProp}, "droplet_id"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				id, err := readDropletID(args)
				if err != nil {
					return nil, err
				}
				if _, err = client.doctl(ctx, "compute", "droplet", "delete", fmt.Sprint(id), "--force"); err != nil {
					return nil, err
				}
				return mcpkit.TextResult(fmt.Sprintf("Droplet %d deletion initiated.", id)), nil
			},
		},
		dropletActionTool(client, "resize_droplet", "Resizes a droplet, including its disk, to the specified size.",
			map[string]mcpkit.Prop{"size": mcpkit.StringProp(`The new size slug, e.g. "s-2vcpu-2gb"`)}, []string{"size"},
			func(id int, args map[string]any) ([]string, string, error) {
				size, err := mcpkit.ReadString(args, "size", true)
				if err != nil {
					return nil, "", err
				}
				return []string{"compute", "droplet-action", "resize", fmt.Sprint(id), "--size", size, "--resize-disk=true"},
					fmt.Sprintf("Droplet %d resize initiated to size %s.", id, size), nil
			}),
		dropletActionTool(client, "reboot_droplet", "Reboots a droplet.",
			map[string]mcpkit.Prop{"wait": mcpkit.BoolProp("Wait for the reboot to complete", false)}, nil,
			func(id int, args map[string]any) ([]string, string, error) {
				cmd := []string{"compute", "droplet-action", "reboot", fmt.Sprint(id)}
				if mcpkit.ReadBool(args, "wait", false) {
					cmd = append(cmd, "--wait")
				}
				return cmd, fmt.Sprintf("Droplet %d reboot initiated.", id), nil
			}),
		dropletActionTool(client, "shutdown_droplet", "Shuts down a droplet gracefully.",
			map[string]mcpkit.Prop{"wait": mcpkit.BoolProp("Wait for the shutdown to complete", true)}, nil,
			func(id int, args map[string]any) ([]string, string, error) {
				cmd := []string{"compute", "droplet-action", "shutdown", fmt.Sprint(id)}
				if mcpkit.ReadBool(args, "wait", true) {
					cmd = append(cmd, "--wait")
				}
				return cmd, fmt.Sprintf("Droplet %d shutdown initiated.", id), nil
			}),
		dropletActionTool(client, "rebuild_droplet", "Rebuilds a droplet from the specified image.",
			map[string]mcpkit.Prop{"image": mcpkit.StringProp("The image to rebuild the droplet with")}, []string{"image"},
			func(id int, args map[string]any) ([]string, string, error) {
				image, err := mcpkit.ReadString(args, "image", true)
				if err != nil {
					return nil, "", err
				}
				return []string{"compute", "droplet-action", "rebuild", fmt.Sprint(id), "--image", image},
					fmt.Sprintf("Droplet %d rebuild initiated with image %s.", id, image), nil
			}),
		{
			Tool: mcp.Tool{
				Name:        "execute_command_on_droplet",
				Description: "Executes a shell command on a droplet over SSH and returns its output.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"droplet_id":         dropletIDProp,
					"command_to_execute": mcpkit.StringProp("The command to execute on the droplet"),
				}, "droplet_id", "command_to_execute"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				id, err := readDropletID(args)
				if err != nil {
					return nil, err
				}
				command, err := mcpkit.ReadString(args, "command_to_execute", true)
				if err != nil {
					return nil, err
				}
				out, err := client.ExecuteOnDroplet(ctx, id, command)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(out), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "check_droplet_responsiveness",
				Description: "Checks whether a droplet answers over SSH by running hostname up to num_tries times. Returns true on the first success.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"droplet_id":     dropletIDProp,
					"num_tries":      mcpkit.IntProp("Number of SSH attempts", defaultTries),
					"sleep_duration": mcpkit.IntProp("Seconds to wait between attempts", defaultSleepDuration),
				}, "droplet_id"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				id, err := readDropletID(args)
				if err != nil {
					return nil, err
				}
				tries, err := mcpkit.ReadIntDefault(args, "num_tries", defaultTries)
				if err != nil {
					return nil, err
				}
				if tries < 1 {
					return nil, mcpkit.InvalidParams("num_tries must be at least 1.")
				}
				sleepSecs, err := mcpkit.ReadIntDefault(args, "sleep_duration", defaultSleepDuration)
				if err != nil {
					return nil, err
				}
				if sleepSecs < 0 {
					return nil, mcpkit.InvalidParams("sleep_duration must not be negative.")
				}
				ok, err := client.CheckResponsiveness(ctx, id, tries, time.Duration(sleepSecs)*time.Second)
				if err != nil {
					return nil, mcpkit.Internal(err, "Responsiveness check interrupted")
				}
				return mcpkit.JSONResult(ok), nil
			},
		},
	}
}
