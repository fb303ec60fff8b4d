package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pasc/internal/config"
)

type initOptions struct {
	name  string
	entry string
	force bool
}

func newInitCmd() *cobra.Command {
	var opts initOptions
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a pasc.toml manifest and a starter program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, opts)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "project name")
	cmd.Flags().StringVar(&opts.entry, "entry", "main.pas", "entry file")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing files")
	return cmd
}

func runInit(dir string, opts initOptions) error {
	if strings.TrimSpace(opts.entry) == "" {
		return errors.New("entry cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}

	manifestPath := filepath.Join(dir, config.ManifestName)
	manifestExists, err := pathExists(manifestPath)
	if err != nil {
		return err
	}
	if manifestExists && !opts.force {
		return errors.Errorf("%s already exists (use --force to overwrite)", config.ManifestName)
	}

	f, err := os.Create(manifestPath)
	if err != nil {
		return errors.Wrap(err, "create manifest")
	}
	m := &config.Manifest{Name: opts.name, Entry: opts.entry}
	if err := m.Write(f); err != nil {
		f.Close()
		return errors.Wrap(err, "write manifest")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	entryPath := filepath.Join(dir, opts.entry)
	if err := ensureDir(entryPath); err != nil {
		return errors.Wrapf(err, "create directory for %s", entryPath)
	}
	entryExists, err := pathExists(entryPath)
	if err != nil {
		return err
	}
	if !entryExists || opts.force {
		if err := os.WriteFile(entryPath, []byte(starterProgram(opts.name)), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", entryPath)
		}
	}
	return nil
}

func starterProgram(name string) string {
	if !isIdent(name) {
		name = "main"
	}
	return fmt.Sprintf("program %s(input, output);\nvar x: integer;\nbegin\n  x := 2 + 3;\n  write(x)\nend.\n", name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && !(digit && i > 0) {
			return false
		}
	}
	return true
}
