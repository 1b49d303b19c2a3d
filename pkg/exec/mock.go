package exec

import (
	"strings"
)

// MockCommandExecutor records commands instead of running them.
type MockCommandExecutor struct {
	// Commands records every command that would have run.
	Commands []string

	// LookPathFunc customizes LookPath behavior; by default every
	// command is found.
	LookPathFunc func(file string) (string, error)

	// ExecuteFunc customizes Execute behavior.
	ExecuteFunc func(name string, arg ...string) error

	// StartFunc customizes Start behavior; by default a no-op process
	// handle is returned.
	StartFunc func(name string, arg ...string) (Process, error)
}

// MockProcess is a controllable Process handle for tests.
type MockProcess struct {
	Interrupted bool
	Killed      bool
	WaitErr     error

	// OnInterrupt runs when the process is interrupted, letting tests
	// simulate the capture tool flushing its output file.
	OnInterrupt func()
}

func (p *MockProcess) Interrupt() error {
	p.Interrupted = true
	if p.OnInterrupt != nil {
		p.OnInterrupt()
	}
	return nil
}

func (p *MockProcess) Kill() error {
	p.Killed = true
	return nil
}

func (p *MockProcess) Wait() error {
	return p.WaitErr
}

// LookPath implements CommandExecutor.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/path/to/" + file, nil
}

// Execute implements CommandExecutor, recording the command line.
func (m *MockCommandExecutor) Execute(name string, arg ...string) error {
	m.record(name, arg...)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, arg...)
	}
	return nil
}

// Start implements CommandExecutor, recording the command line.
func (m *MockCommandExecutor) Start(name string, arg ...string) (Process, error) {
	m.record(name, arg...)
	if m.StartFunc != nil {
		return m.StartFunc(name, arg...)
	}
	return &MockProcess{}, nil
}

func (m *MockCommandExecutor) record(name string, arg ...string) {
	cmdStr := name
	if len(arg) > 0 {
		cmdStr = name + " " + strings.Join(arg, " ")
	}
	m.Commands = append(m.Commands, cmdStr)
}
