package exec

import (
	"fmt"
	"os"
	"os/exec"
)

// ExecError wraps an execution failure with the combined output so
// callers can surface the tool's own message.
type ExecError struct {
	Err    error
	Output string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Output)
}

func (e *ExecError) Unwrap() error { return e.Err }

// RealCommandExecutor runs actual system commands.
type RealCommandExecutor struct{}

// LookPath searches PATH for an executable.
func (e *RealCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Execute runs the command and waits for it, capturing output for
// error reporting.
func (e *RealCommandExecutor) Execute(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ExecError{Err: err, Output: string(output)}
	}
	return nil
}

// Start launches the command without waiting.
func (e *RealCommandExecutor) Start(name string, arg ...string) (Process, error) {
	cmd := exec.Command(name, arg...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return &realProcess{cmd: cmd}, nil
}

type realProcess struct {
	cmd *exec.Cmd
}

func (p *realProcess) Interrupt() error {
	return p.cmd.Process.Signal(os.Interrupt)
}

func (p *realProcess) Kill() error {
	return p.cmd.Process.Kill()
}

func (p *realProcess) Wait() error {
	return p.cmd.Wait()
}
