package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pasc/internal/compiler"
	"pasc/internal/config"
)

type buildOptions struct {
	out      string
	stdout   bool
	comments bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Compile a .pas file or a project directory into assembly",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runBuild(cmd.OutOrStdout(), target, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output path (default: entry with .asm extension)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the assembly instead of writing it")
	cmd.Flags().BoolVar(&opts.comments, "comments", false, "annotate instructions with their source operands")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Compile without writing output and report the first error",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			src, _, err := resolveTarget(target)
			if err != nil {
				return err
			}
			if _, err := compileFile(src, compiler.Options{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", src)
			return nil
		},
	}
}

func runBuild(stdout io.Writer, target string, opts buildOptions) error {
	src, dst, err := resolveTarget(target)
	if err != nil {
		return err
	}
	if opts.out != "" {
		dst = opts.out
	}

	asm, err := compileFile(src, compiler.Options{Comments: opts.comments})
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err := stdout.Write(asm)
		return err
	}
	if err := ensureDir(dst); err != nil {
		return errors.Wrapf(err, "create directory for %s", dst)
	}
	if err := writeFileAtomic(dst, asm); err != nil {
		return errors.Wrapf(err, "write %s", dst)
	}
	log.Infof("wrote %s", dst)
	return nil
}

// resolveTarget maps a build target to its source file and default output.
// A directory is a project and must hold a manifest.
func resolveTarget(target string) (src, dst string, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", "", errors.Wrapf(err, "stat %s", target)
	}
	if !info.IsDir() {
		return target, config.DefaultOutput(target), nil
	}
	m, err := config.LoadDir(target)
	if err != nil {
		return "", "", err
	}
	return m.EntryPath(), m.OutputPath(), nil
}

// compileFile compiles src in memory. Nothing is returned unless the whole
// program compiled.
func compileFile(src string, opts compiler.Options) ([]byte, error) {
	text, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", src)
	}
	var buf bytes.Buffer
	if err := compiler.Compile(src, string(text), &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
