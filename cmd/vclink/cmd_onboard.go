// VCLink - companion threads for Discord voice channels
// License: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vclink-bot/vclink/pkg/config"
)

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnboard()
		},
	}
}

func runOnboard() error {
	paths := config.ResolveRuntimePaths()

	if _, err := os.Stat(paths.ConfigPath); err == nil {
		return fmt.Errorf("config already exists at %s", paths.ConfigPath)
	}

	if err := config.SaveConfig(paths.ConfigPath, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote starter config to %s\n", paths.ConfigPath)
	fmt.Println("Fill in discord.token, discord.voice_category_id and discord.announce_channel_id.")
	return nil
}
