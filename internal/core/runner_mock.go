package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockRunner implements Runner for testing purposes
type MockRunner struct {
	mu           sync.Mutex
	Expectations map[string]MockResponse
	Calls        []MockCall

	// OnCall, if set, runs before the canned response is returned. Tests use
	// it to block the "process" or to change the world it installs into.
	OnCall func(call MockCall)
}

type MockResponse struct {
	Output string
	Error  error
}

type MockCall struct {
	Dir  string
	Name string
	Args []string
}

func (c MockCall) String() string {
	return CommandLine(c.Name, c.Args...)
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Expectations: make(map[string]MockResponse),
		Calls:        make([]MockCall, 0),
	}
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	call := MockCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	hook := m.OnCall
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	line := call.String()
	if resp, ok := m.Expectations[line]; ok {
		return resp.Output, resp.Error
	}
	for k, v := range m.Expectations {
		if strings.Contains(line, k) {
			return v.Output, v.Error
		}
	}

	return "", fmt.Errorf("unexpected command: %s", line)
}

// Helpers for Test Setup

func (m *MockRunner) OnRun(cmd string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expectations[cmd] = MockResponse{Output: output, Error: err}
}

func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockRunner) RecordedCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.Calls...)
}

func (m *MockRunner) AssertCalled(cmdFragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if strings.Contains(call.String(), cmdFragment) {
			return true
		}
	}
	return false
}
