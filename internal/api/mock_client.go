package api

import (
	"context"
	"sync"
)

// MockMessageClient is a mock implementation of MessageClientInterface for testing
type MockMessageClient struct {
	mu sync.Mutex

	// Mock return values
	Base       string
	GetVal     string
	GetErr     error
	PutErr     error
	PostErr    error
	ModeErr    error
	EchoPrefix string // prepended to PUT/POST bodies to simulate server normalization

	// Call recorders
	GetCalls   int
	PutBodies  []string
	PostBodies []string
	Modes      []string
}

// Ensure MockMessageClient implements MessageClientInterface
var _ MessageClientInterface = (*MockMessageClient)(nil)

func (m *MockMessageClient) GetMessage(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.GetVal, nil
}

func (m *MockMessageClient) PutMessage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutBodies = append(m.PutBodies, text)
	if m.PutErr != nil {
		return "", m.PutErr
	}
	return m.EchoPrefix + text, nil
}

func (m *MockMessageClient) PostMessage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostBodies = append(m.PostBodies, text)
	if m.PostErr != nil {
		return "", m.PostErr
	}
	return m.EchoPrefix + text, nil
}

func (m *MockMessageClient) SetMode(ctx context.Context, mode string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Modes = append(m.Modes, mode)
	if m.ModeErr != nil {
		return "", m.ModeErr
	}
	return mode, nil
}

func (m *MockMessageClient) APIBase() string {
	if m.Base == "" {
		return "http://mock/api"
	}
	return m.Base
}
