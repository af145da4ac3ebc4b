package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/diskplan/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	cfg, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Target Summary")
	fmt.Println("--------------")
	fmt.Printf("  Device:      %s\n", cfg.Device)
	if cfg.VolumeGroup != "" {
		fmt.Printf("  LVM:         %s/%s (%s)\n", cfg.VolumeGroup, cfg.LogicalVolume, cfg.Size)
	}
	fmt.Printf("  Filesystem:  %s\n", cfg.FSType)
	fmt.Printf("  Mount Point: %s\n", cfg.MountPoint)
	if cfg.Remote.IsSet() {
		fmt.Printf("  Remote:      %s@%s:%d\n", cfg.Remote.User, cfg.Remote.Host, cfg.Remote.Port)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review the plan:\n")
	fmt.Printf("     diskplan plan -c %s\n", outputPath)
	fmt.Println()
	fmt.Printf("  2. Apply it:\n")
	fmt.Printf("     diskplan plan -c %s --apply\n", outputPath)
	fmt.Println()
}
