package execxtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

func TestHasArgs(t *testing.T) {
	cmd := execx.Command{Name: "doctl", Args: []string{"compute", "droplet", "list"}}
	assert.True(t, HasArgs(cmd, "compute", "droplet"))
	assert.False(t, HasArgs(cmd, "compute", "image"))
	assert.False(t, HasArgs(cmd, "compute", "droplet", "list", "--format"))
}

func TestFakeRunnerRecordsCalls(t *testing.T) {
	runner := &FakeRunner{Handler: func(cmd execx.Command) (*execx.Result, error) {
		return &execx.Result{Stdout: cmd.Name}, nil
	}}
	res, err := runner.Run(context.Background(), execx.Command{Name: "task", Args: []string{"export"}})
	require.NoError(t, err)
	assert.Equal(t, "task", res.Stdout)
	assert.Equal(t, []string{"task export"}, runner.CommandLines())

	res, err = (&FakeRunner{}).Run(context.Background(), execx.Command{Name: "true"})
	require.NoError(t, err)
	assert.Empty(t, res.Stdout)
}
