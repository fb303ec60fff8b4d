package tools

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pasc.tools")

// Binaries are the commands installed by Install, keyed by package path.
var Binaries = []struct{ Pkg, Name string }{
	{"./cmd/pasc", "pasc"},
	{"./cmd/pasc-lsp", "pasc-lsp"},
}

type InstallOptions struct {
	BinDir string

	// Build compiles pkg into out. Defaults to go build.
	Build func(pkg, out string) error
}

// Install builds every binary into opts.BinDir and returns the written paths.
func Install(opts InstallOptions) ([]string, error) {
	if opts.BinDir == "" {
		opts.BinDir = "bin"
	}
	if opts.Build == nil {
		opts.Build = goBuild
	}

	if err := os.MkdirAll(opts.BinDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", opts.BinDir)
	}

	paths := make([]string, 0, len(Binaries))
	for _, b := range Binaries {
		out := filepath.Join(opts.BinDir, b.Name)
		log.Debugf("building %s into %s", b.Pkg, out)
		if err := opts.Build(b.Pkg, out); err != nil {
			return paths, errors.Wrapf(err, "build %s", b.Name)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

func goBuild(pkg, out string) error {
	cmd := exec.Command("go", "build", "-o", out, pkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
