package main

import (
	"fmt"
	"os"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		cfg := config.GetPreset(args[0], args[1])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[1], config.ListPresets(args[0]))
		}
		if writeTo != "" {
			if err := config.Save(writeTo, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s/%s to %s\n", args[0], args[1], writeTo)
			return nil
		}
		return yaml.NewEncoder(os.Stdout).Encode(cfg)
	}

	groups := config.Groups()
	if len(args) == 1 {
		groups = args
	}
	for _, g := range groups {
		presets := config.ListPresets(g)
		if len(presets) == 0 {
			fmt.Printf("no presets for: %s\n", g)
			continue
		}
		fmt.Printf("presets for %s:\n", g)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
