package executor

import (
	"github.com/pkg/errors"
)

type Executor interface {
	Run([]Executable) []DeploymentError
}

//go:generate counterfeiter -o fakes/fake_executable.go . Executable
type Executable interface {
	Execute() DeploymentError
}

type DeploymentError struct {
	AppID string
	Err   error
}

type ErrorPolicy string

const (
	// StopOnFirstError abandons the remaining app ids after the first failure.
	StopOnFirstError ErrorPolicy = "stop-on-first-error"
	// ContinueOnError runs every app id and reports all failures at the end.
	ContinueOnError ErrorPolicy = "continue-on-error"
)

func ParseErrorPolicy(value string) (ErrorPolicy, error) {
	switch ErrorPolicy(value) {
	case "":
		return StopOnFirstError, nil
	case StopOnFirstError, ContinueOnError:
		return ErrorPolicy(value), nil
	default:
		return "", errors.Errorf("unknown error policy '%s', expected '%s' or '%s'", value, StopOnFirstError, ContinueOnError)
	}
}

type ActionFunc func(appID string) error

type AppExecutable struct {
	action ActionFunc
	appID  string
}

func NewAppExecutable(action ActionFunc, appID string) AppExecutable {
	return AppExecutable{
		action: action,
		appID:  appID,
	}
}

func (e AppExecutable) Execute() DeploymentError {
	return DeploymentError{AppID: e.appID, Err: e.action(e.appID)}
}
