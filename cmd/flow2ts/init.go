package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lukeapage/flow-to-ts/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default flow2ts.toml",
	Long: `Write a default flow2ts.toml into dir, or the current directory when dir
is omitted. A missing directory is created. An existing manifest is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path, err := writeManifest(target)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}
	return nil
}

// writeManifest creates dir if needed and writes the default manifest in it.
func writeManifest(dir string) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}

	path := filepath.Join(dir, config.ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("already initialized: %s exists", path)
	}
	if err := os.WriteFile(path, []byte(config.DefaultManifest), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
