package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/snova/gae-deployer/executor"
	"gopkg.in/yaml.v2"
)

const (
	FileName = "deployer.yml"

	ConfigPathEnv = "GAE_DEPLOYER_CONFIG"
	DebugEnv      = "GAE_DEPLOYER_DEBUG"

	DefaultInterpreter = "python"
	DefaultProxyURL    = "http://127.0.0.1:48100"
)

type Config struct {
	Interpreter string               `yaml:"interpreter"`
	AppcfgPath  string               `yaml:"appcfg"`
	SourcePath  string               `yaml:"source"`
	ProxyURL    string               `yaml:"proxy"`
	OnError     executor.ErrorPolicy `yaml:"on_error"`
	ErrorLogDir string               `yaml:"error_log_dir"`
	Debug       bool                 `yaml:"debug"`
}

// Default lays the deployer out next to the driver binary:
// <dir>/appcfg/appcfg.py and <dir>/src.
func Default(driverDir string) Config {
	return Config{
		Interpreter: DefaultInterpreter,
		AppcfgPath:  filepath.Join(driverDir, "appcfg", "appcfg.py"),
		SourcePath:  filepath.Join(driverDir, "src"),
		ProxyURL:    DefaultProxyURL,
		OnError:     executor.StopOnFirstError,
		ErrorLogDir: driverDir,
	}
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path, driverDir string) (Config, error) {
	cfg := Default(driverDir)

	contents, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to unmarshal config file %s", path)
	}

	cfg.OnError, err = executor.ParseErrorPolicy(string(cfg.OnError))
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid on_error in %s", path)
	}

	cfg.AppcfgPath = resolve(cfg.AppcfgPath, driverDir)
	cfg.SourcePath = resolve(cfg.SourcePath, driverDir)
	cfg.ErrorLogDir = resolve(cfg.ErrorLogDir, driverDir)

	return cfg, nil
}

// LoadFromEnvironment loads GAE_DEPLOYER_CONFIG, or deployer.yml in the
// driver directory, and applies GAE_DEPLOYER_DEBUG.
func LoadFromEnvironment(driverDir string) (Config, error) {
	path := os.Getenv(ConfigPathEnv)
	if path == "" {
		path = filepath.Join(driverDir, FileName)
	}

	cfg, err := Load(path, driverDir)
	if err != nil {
		return Config{}, err
	}

	if os.Getenv(DebugEnv) == "true" {
		cfg.Debug = true
	}

	return cfg, nil
}

func resolve(path, driverDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(driverDir, path)
}
