package main

import (
	"os"
	"path/filepath"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/snova/gae-deployer/config"
	"github.com/snova/gae-deployer/factory"
	"github.com/urfave/cli"
)

var version string

func main() {
	cli.HandleExitCoder(run(os.Args))
}

func run(argv []string) error {
	driverDir, err := executableDir()
	if err != nil {
		return redCliError(err)
	}

	cfg, err := config.LoadFromEnvironment(driverDir)
	if err != nil {
		return redCliError(err)
	}

	logger := factory.BuildLogger(cfg.Debug, os.Stderr)

	logger.Debug("main", "Driver directory %s, appcfg %s", driverDir, cfg.AppcfgPath)

	d := factory.BuildDriver(cfg, version, os.Stdin, os.Stdout, os.Stderr, logger)
	return d.Run(argv)
}

// executableDir is where appcfg/ and src/ are shipped.
func executableDir() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate the deployer executable")
	}

	path, err = filepath.EvalSymlinks(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve the deployer executable")
	}

	return filepath.Dir(path), nil
}

func redCliError(err error) *cli.ExitError {
	return cli.NewExitError(ansi.Color(err.Error(), "red"), 1)
}
