package llm

import (
	"context"
	"sync"
	"time"
)

// MockResponse is one scripted reply of a MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error

	// Truncated makes the reply fail the way a max-token cut-off does,
	// with Text as the partial output.
	Truncated bool

	// Delay holds the reply back; cancelling the context ends the wait.
	Delay time.Duration
}

// MockProvider replays scripted replies in order and records every request.
// Once the script runs out each call fails with ErrProviderUnavailable.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	next, ok := m.take(req)
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}

	if next.Delay > 0 {
		timer := time.NewTimer(next.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	stop := StopEnd
	if next.Truncated {
		stop = StopMaxTokens
	}
	return reply(next.Text, stop, "mock", next.Usage)
}

// take records req and pops the next scripted reply.
func (m *MockProvider) take(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{}, false
	}
	next := m.script[0]
	m.script = m.script[1:]
	return next, true
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastRequest returns the most recent request, or the zero Request.
func (m *MockProvider) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}
	}
	return m.Calls[len(m.Calls)-1]
}
