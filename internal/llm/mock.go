package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
// Fragments se entregan en orden y luego se devuelve StreamErr.
type MockClient struct {
	Response  string
	Err       error
	Fragments []string
	StreamErr error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.record(prompt)
	return m.Response, m.Err
}

func (m *MockClient) GenerateStream(ctx context.Context, prompt string, onFragment FragmentFunc) error {
	m.record(prompt)
	for _, f := range m.Fragments {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onFragment(f); err != nil {
			return err
		}
	}
	return m.StreamErr
}

// Calls devuelve cuantas llamadas al modelo se hicieron.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

func (m *MockClient) record(prompt string) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
}
