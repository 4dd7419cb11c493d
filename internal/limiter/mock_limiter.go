package limiter

// MockLimiter is a test double for the Limiter interface
type MockLimiter struct {
	AllowResult bool

	AllowCalls  []string // client keys Allow was called with
	CloseCalled bool
	CloseError  error
}

// NewMockLimiter creates a mock that allows or denies every request
func NewMockLimiter(allowResult bool) *MockLimiter {
	return &MockLimiter{
		AllowResult: allowResult,
		AllowCalls:  []string{},
	}
}

// Allow implements Limiter
func (m *MockLimiter) Allow(key string) bool {
	m.AllowCalls = append(m.AllowCalls, key)
	return m.AllowResult
}

// Close implements Limiter
func (m *MockLimiter) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
