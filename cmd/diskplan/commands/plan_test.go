package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	cmd := Plan()

	require.NotNil(t, cmd)
	assert.Equal(t, "plan", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestPlan_Flags(t *testing.T) {
	cmd := Plan()

	for _, name := range []string{
		"device", "volume-group", "logical-volume", "size",
		"mount-point", "fs-type", "wipe", "apply",
		"host", "user", "ssh-key", "port",
		"config", "json",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestPlan_DryRunIsDefault(t *testing.T) {
	cmd := Plan()

	flag := cmd.Flags().Lookup("apply")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestPlan_ConfigFlagShorthand(t *testing.T) {
	cmd := Plan()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}
