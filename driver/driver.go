package driver

import (
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/snova/gae-deployer/appcfg"
	"github.com/snova/gae-deployer/deployment"
	"github.com/snova/gae-deployer/executor"
	"github.com/snova/gae-deployer/prompt"
	"github.com/urfave/cli"
)

const logTag = "driver"

type Logger interface {
	Debug(tag, msg string, args ...interface{})
	Info(tag, msg string, args ...interface{})
	Warn(tag, msg string, args ...interface{})
	Error(tag, msg string, args ...interface{})
}

// Settings holds the values a session is built from. An empty ProxyURL
// disables the proxy prompt; an empty ErrorLogDir disables the error log.
type Settings struct {
	Version     string
	SourcePath  string
	ProxyURL    string
	ErrorLogDir string
}

type Driver struct {
	prompter prompt.Prompter
	tool     appcfg.Tool
	executor executor.Executor
	settings Settings
	logger   Logger
}

func NewDriver(prompter prompt.Prompter, tool appcfg.Tool, executor executor.Executor, settings Settings, logger Logger) Driver {
	return Driver{
		prompter: prompter,
		tool:     tool,
		executor: executor,
		settings: settings,
		logger:   logger,
	}
}

// Run forwards argv[1:] to appcfg untouched when there is anything to
// forward, otherwise it asks for the batch interactively.
func (d Driver) Run(argv []string) error {
	if len(argv) > 1 {
		return d.passThrough(argv[1:])
	}
	return d.interactive()
}

func (d Driver) passThrough(args []string) error {
	d.logger.Debug(logTag, "Forwarding arguments to appcfg: %s", strings.Join(args, " "))

	exitStatus, err := d.tool.Run(args, nil)
	if err == nil {
		return nil
	}

	d.logger.Debug(logTag, "appcfg failed: %s", err)
	if exitStatus > 0 {
		return cli.NewExitError("", exitStatus)
	}
	return redCliError(err)
}

func (d Driver) interactive() error {
	d.prompter.Println(fmt.Sprintf(versionBanner, d.settings.Version))

	session, err := d.askSession()
	if err != nil {
		return redCliError(err)
	}

	appIDs, err := d.askAppIDs()
	if err != nil {
		return redCliError(err)
	}

	if len(appIDs) == 0 {
		d.prompter.Println(ansi.Color(noAppIDWarning, "yellow"))
	} else {
		d.runBatch(session, appIDs)
	}

	if _, err := d.prompter.Ask(exitPrompt); err != nil && err != io.EOF {
		d.logger.Debug(logTag, "Failed to wait for enter: %s", err)
	}

	return nil
}

func (d Driver) askSession() (deployment.Session, error) {
	email, err := d.askEmail()
	if err != nil {
		return deployment.Session{}, err
	}

	action, err := d.askAction()
	if err != nil {
		return deployment.Session{}, err
	}

	proxyURL, err := d.askProxy()
	if err != nil {
		return deployment.Session{}, err
	}

	session := deployment.NewSession(action, email, proxyURL, d.settings.SourcePath)
	d.logger.Debug(logTag, "Session: action=%s cookies=%t proxy=%s", session.Action, session.UseCookies, session.ProxyURL)

	return session, nil
}

func (d Driver) askEmail() (string, error) {
	specify, err := d.prompter.Confirm(emailQuestion)
	if err != nil || !specify {
		return "", ignoreEOF(err)
	}

	email, err := d.prompter.Ask(emailPrompt)
	return email, ignoreEOF(err)
}

func (d Driver) askAction() (deployment.Action, error) {
	choice, err := d.prompter.Ask(actionQuestion)
	if err := ignoreEOF(err); err != nil {
		return "", err
	}

	action, valid := deployment.ParseAction(choice)
	if !valid {
		d.logger.Warn(logTag, "Invalid action choice %s", choice)
		d.prompter.Println(ansi.Color(fmt.Sprintf(invalidActionWarning, choice), "yellow"))
	}

	return action, nil
}

func (d Driver) askProxy() (string, error) {
	if d.settings.ProxyURL == "" {
		return "", nil
	}

	useProxy, err := d.prompter.Confirm(fmt.Sprintf(proxyQuestion, d.settings.ProxyURL))
	if err != nil || !useProxy {
		return "", ignoreEOF(err)
	}

	return d.settings.ProxyURL, nil
}

func (d Driver) askAppIDs() ([]string, error) {
	d.prompter.Println(appIDHint)

	line, err := d.prompter.Ask(appIDPrompt)
	if err := ignoreEOF(err); err != nil {
		return nil, err
	}

	return deployment.ParseAppIDs(line), nil
}

func (d Driver) runBatch(session deployment.Session, appIDs []string) {
	attempted := 0
	deploy := func(appID string) error {
		attempted++
		return d.deploy(session.Request(appID))
	}

	var executables []executor.Executable
	for _, appID := range appIDs {
		executables = append(executables, executor.NewAppExecutable(deploy, appID))
	}

	errs := d.executor.Run(executables)
	if len(errs) == 0 {
		d.logger.Info(logTag, "Finished %s for %d app ids", session.Action, len(appIDs))
		return
	}

	d.reportFailures(executor.NewBatchError(errs, len(appIDs), session.Action.String()), appIDs[attempted:])
}

func (d Driver) deploy(request deployment.Request) error {
	d.prompter.Println(fmt.Sprintf(startBanner, request.Action, request.AppID))

	args := request.Args()
	d.logger.Debug(logTag, "appcfg arguments for %s: %s", request.AppID, strings.Join(args, " "))

	if _, err := d.tool.Run(args, request.Env()); err != nil {
		d.prompter.Println(ansi.Color(fmt.Sprintf(deployFailedError, request.Action, request.AppID, err), "red"))
		return err
	}

	d.prompter.Println(fmt.Sprintf(endBanner, request.Action, request.AppID))
	return nil
}

func (d Driver) reportFailures(batchErr executor.BatchError, skipped []string) {
	d.logger.Error(logTag, "%s: %s", batchErr.Summary, strings.Join(batchErr.FailedAppIDs(), ", "))
	d.prompter.Println(ansi.Color(batchErr.Error(), "red"))

	if len(skipped) > 0 {
		d.prompter.Println(ansi.Color(fmt.Sprintf(skippedAppIDsWarning, strings.Join(skipped, ", ")), "yellow"))
	}

	if err := writeStackTrace(d.settings.ErrorLogDir, batchErr.StackTrace()); err != nil {
		d.logger.Warn(logTag, "Failed to write error log: %s", err)
	}
}

func writeStackTrace(dir, errorWithStackTrace string) error {
	if dir == "" || errorWithStackTrace == "" {
		return nil
	}

	path := filepath.Join(dir, fmt.Sprintf("deployer-%s.err.log", time.Now().UTC().Format(time.RFC3339)))
	if err := ioutil.WriteFile(path, []byte(errorWithStackTrace), 0644); err != nil {
		return errors.Wrap(err, "failed to write stack trace")
	}
	return nil
}

func ignoreEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

func redCliError(err error) *cli.ExitError {
	return cli.NewExitError(ansi.Color(err.Error(), "red"), 1)
}
