package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/diskplan/internal/config"
	"github.com/imamik/diskplan/internal/inventory"
	"github.com/imamik/diskplan/internal/runner"
)

func withInventoryFakes(t *testing.T, devices []inventory.BlockDevice, collectErr error) {
	t.Helper()

	origRunner, origCollect := newRunner, collectDevices
	t.Cleanup(func() {
		newRunner, collectDevices = origRunner, origCollect
	})

	newRunner = func(*config.Config) (runner.Runner, func(), error) {
		return &fakeRunner{}, func() {}, nil
	}
	collectDevices = func(context.Context, runner.Runner) ([]inventory.BlockDevice, error) {
		return devices, collectErr
	}
}

func TestInventory_Success(t *testing.T) {
	withInventoryFakes(t, []inventory.BlockDevice{
		{Name: "sdb", Path: "/dev/sdb", SizeBytes: 500 << 30, Type: "disk"},
	}, nil)

	err := Inventory(context.Background(), InventoryOptions{})

	require.NoError(t, err)
}

func TestInventory_CollectorFailureIsNonFatal(t *testing.T) {
	withInventoryFakes(t, nil, errors.New("lsblk: command not found"))

	err := Inventory(context.Background(), InventoryOptions{})

	assert.NoError(t, err, "a failed inventory query degrades to zero candidates")
}

func TestInventory_RemoteRequiresUser(t *testing.T) {
	withInventoryFakes(t, nil, nil)

	err := Inventory(context.Background(), InventoryOptions{
		Remote: RemoteOptions{Host: "10.0.0.5"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user")
}
