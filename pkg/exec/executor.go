// Package exec abstracts the external commands voicefirst shells out
// to (audio capture and playback tools) behind mockable interfaces.
package exec

// Process is a handle to a started long-running command.
type Process interface {
	// Interrupt asks the process to stop gracefully (SIGINT), which
	// capture tools treat as "finish the file and exit".
	Interrupt() error

	// Kill terminates the process immediately.
	Kill() error

	// Wait blocks until the process exits and returns its final error.
	Wait() error
}

// CommandExecutor runs external commands. The production
// implementation wraps os/exec; tests substitute a mock.
type CommandExecutor interface {
	// LookPath searches PATH for an executable.
	LookPath(file string) (string, error)

	// Execute runs a command to completion.
	Execute(name string, arg ...string) error

	// Start launches a long-running command and returns a handle to
	// stop it later.
	Start(name string, arg ...string) (Process, error)
}
