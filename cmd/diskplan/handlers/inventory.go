package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/diskplan/internal/inventory"
	"github.com/imamik/diskplan/internal/ui"
)

// collectDevices gathers the device inventory. Replaced in tests.
var collectDevices = inventory.Collect

// Inventory handles the inventory command. A failed collection is reported
// as a warning and rendered as an empty listing; it never fails the
// command, so the inventory stays usable as a quick pre-flight check.
func Inventory(ctx context.Context, opts InventoryOptions) error {
	cfg, err := resolveRemote(opts.Remote)
	if err != nil {
		return err
	}

	r, closeRunner, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer closeRunner()

	devices, err := collectDevices(ctx, r)
	if err != nil {
		log.Printf("Warning: inventory query failed, treating as zero candidates: %v", err)
		devices = nil
	}
	candidates := inventory.Candidates(devices)

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Devices    []inventory.BlockDevice `json:"devices"`
			Candidates []inventory.BlockDevice `json:"candidates"`
		}{Devices: devices, Candidates: candidates})
	}

	renderer := ui.NewRenderer(isatty.IsTerminal(os.Stdout.Fd()))
	fmt.Print(renderer.Inventory(devices, candidates))
	return nil
}
