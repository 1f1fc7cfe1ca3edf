package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strlint/internal/config"
	"strlint/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent verdict cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every cached verdict",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.Discover(".")
		if err != nil {
			return err
		}
		cache, err := driver.OpenDiskCache("strlint", cfg.Cache.Dir)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("cache clean: %w", err)
		}
		fmt.Println("verdict cache dropped")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
