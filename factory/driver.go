package factory

import (
	"io"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/snova/gae-deployer/appcfg"
	"github.com/snova/gae-deployer/config"
	"github.com/snova/gae-deployer/driver"
	"github.com/snova/gae-deployer/executor"
	"github.com/snova/gae-deployer/prompt"
)

const defaultVersion = "dev"

func BuildDriver(cfg config.Config, version string, stdin io.Reader, stdout, stderr io.Writer, logger boshlog.Logger) driver.Driver {
	if version == "" {
		version = defaultVersion
	}

	tool := appcfg.NewScriptTool(
		boshsys.NewExecCmdRunner(logger),
		cfg.Interpreter,
		cfg.AppcfgPath,
		stdin,
		stdout,
		stderr,
		logger,
	)

	return driver.NewDriver(
		prompt.NewLinePrompter(stdin, stdout),
		tool,
		executor.NewSerialExecutor(cfg.OnError),
		driver.Settings{
			Version:     version,
			SourcePath:  cfg.SourcePath,
			ProxyURL:    cfg.ProxyURL,
			ErrorLogDir: cfg.ErrorLogDir,
		},
		logger,
	)
}
