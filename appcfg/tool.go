package appcfg

import (
	"io"
	"strings"

	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/pkg/errors"
)

//go:generate counterfeiter -o fakes/fake_tool.go . Tool
type Tool interface {
	Run(args []string, env map[string]string) (int, error)
}

type Logger interface {
	Debug(tag, msg string, args ...interface{})
	Info(tag, msg string, args ...interface{})
	Warn(tag, msg string, args ...interface{})
	Error(tag, msg string, args ...interface{})
}

const logTag = "appcfg"

// ScriptTool runs appcfg.py as a child process attached to the driver's
// console.
type ScriptTool struct {
	runner      boshsys.CmdRunner
	interpreter string
	scriptPath  string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      Logger
}

func NewScriptTool(runner boshsys.CmdRunner, interpreter, scriptPath string, stdin io.Reader, stdout, stderr io.Writer, logger Logger) ScriptTool {
	return ScriptTool{
		runner:      runner,
		interpreter: interpreter,
		scriptPath:  scriptPath,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      logger,
	}
}

func (t ScriptTool) Run(args []string, env map[string]string) (int, error) {
	cmd := t.command(args, env)
	t.logger.Debug(logTag, "Running %s %s", cmd.Name, strings.Join(cmd.Args, " "))

	_, _, exitStatus, err := t.runner.RunComplexCommand(cmd)
	if err != nil {
		t.logger.Debug(logTag, "appcfg exited with status %d: %s", exitStatus, err)
		return exitStatus, errors.Wrapf(err, "appcfg %s failed", strings.Join(args, " "))
	}

	return exitStatus, nil
}

func (t ScriptTool) command(args []string, env map[string]string) boshsys.Command {
	name := t.scriptPath
	cmdArgs := append([]string{}, args...)
	if t.interpreter != "" {
		name = t.interpreter
		cmdArgs = append([]string{t.scriptPath}, cmdArgs...)
	}

	return boshsys.Command{
		Name:         name,
		Args:         cmdArgs,
		Env:          env,
		KeepAttached: true,
		Stdin:        t.stdin,
		Stdout:       t.stdout,
		Stderr:       t.stderr,
	}
}
