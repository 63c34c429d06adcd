package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newCacheCmd creates the cache management command.
func newCacheCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solve cache",
	}

	cmd.AddCommand(newCacheClearCmd(cfg))
	cmd.AddCommand(newCachePathCmd(cfg))
	return cmd
}

func newCacheClearCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached solve results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cfg.cacheDir()
			if err != nil {
				return err
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if !info.IsDir() {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Empty subdirectories go too.
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func newCachePathCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cfg.cacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}
