package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON marshals v into a successful reply. It panics on values that
// cannot be encoded, which only happens with broken test fixtures.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return MockResponse{Content: b}
}

// MockProvider answers from a queue of replies, or from a handler once the
// queue is empty. Every request is recorded. It backs the "mock" provider
// and tests.
type MockProvider struct {
	mu      sync.Mutex
	model   string
	queue   []MockResponse
	handler func(Request) MockResponse
	calls   []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{model: ProviderMock, queue: responses}
}

// NewMockHandler builds a provider that computes each reply from the request.
func NewMockHandler(fn func(Request) MockResponse) *MockProvider {
	return &MockProvider{model: ProviderMock, handler: fn}
}

// WithModel overrides the model name reported by ModelID and responses.
func (m *MockProvider) WithModel(model string) *MockProvider {
	m.mu.Lock()
	m.model = model
	m.mu.Unlock()
	return m
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls = append(m.calls, req)
	next, ok := m.dequeue()
	handler, model := m.handler, m.model
	m.mu.Unlock()

	if !ok {
		if handler == nil {
			return nil, &ErrProviderUnavailable{}
		}
		next = handler(req)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      model,
		StopReason: StopEnd,
	}, nil
}

// dequeue must be called with mu held.
func (m *MockProvider) dequeue() (MockResponse, bool) {
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next, true
}

func (m *MockProvider) ModelID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

// AddResponse queues a reply ahead of the handler.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// Calls returns a copy of the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
