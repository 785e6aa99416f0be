package executor

func NewSerialExecutor(policy ErrorPolicy) SerialExecutor {
	return SerialExecutor{policy: policy}
}

// SerialExecutor runs executables one at a time in order.
type SerialExecutor struct {
	policy ErrorPolicy
}

func (s SerialExecutor) Run(executables []Executable) []DeploymentError {
	var errors []DeploymentError

	for _, executable := range executables {
		if err := executable.Execute(); err.Err != nil {
			errors = append(errors, err)
			if s.policy != ContinueOnError {
				break
			}
		}
	}
	return errors
}
