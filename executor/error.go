package executor

import (
	"fmt"
	"strings"
)

type BatchError struct {
	Summary        string
	DeploymentErrs []DeploymentError
}

func NewBatchError(deploymentErrs []DeploymentError, total int, action string) BatchError {
	return BatchError{
		Summary:        fmt.Sprintf("%d out of %d app ids failed to %s", len(deploymentErrs), total, action),
		DeploymentErrs: deploymentErrs,
	}
}

func (b BatchError) Error() string {
	msg := b.Summary + ":\n"
	for _, err := range b.DeploymentErrs {
		msg = msg + fmt.Sprintf("AppID '%s':\n%s\n", err.AppID, IndentBlock(err.Err.Error()))
	}
	return msg
}

// StackTrace renders every failure with its stack, for the error log file.
func (b BatchError) StackTrace() string {
	msg := b.Summary + ":\n"
	for _, err := range b.DeploymentErrs {
		msg = msg + fmt.Sprintf("AppID %s: %+v\n", err.AppID, err.Err)
	}
	return msg
}

func (b BatchError) FailedAppIDs() []string {
	appIDs := []string{}
	for _, err := range b.DeploymentErrs {
		appIDs = append(appIDs, err.AppID)
	}
	return appIDs
}

func IndentBlock(block string) string {
	return fmt.Sprintf("  %s", strings.Replace(block, "\n", "\n  ", -1))
}
