package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"engineer-grok/internal/domain"
	"engineer-grok/internal/llm"
)

const defaultLLMTimeout = 60 * time.Second

var (
	ErrMessageRequired     = errors.New("message is required")
	ErrAPIKeyNotConfigured = errors.New("api key not configured")
	ErrEmptyRephrase       = errors.New("empty rephrased query")
)

// EmitFunc publica un registro del stream hacia el cliente.
type EmitFunc func(event domain.StreamEvent) error

// ChatService orquesta las dos llamadas al modelo: reformulacion y respuesta en streaming.
// No guarda estado entre requests.
type ChatService struct {
	llm     llm.LLMClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewChatService recibe el cliente del modelo; nil significa que no hay credencial configurada.
func NewChatService(client llm.LLMClient, timeout time.Duration, logger *zap.Logger) *ChatService {
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{llm: client, timeout: timeout, logger: logger}
}

// Stream valida el mensaje, lo reformula y emite el registro rephrase seguido de
// un registro response por fragmento, en orden de llegada. Si la respuesta falla
// antes del primer fragmento no se emite ningun registro.
func (s *ChatService) Stream(ctx context.Context, message string, emit EmitFunc) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrMessageRequired
	}
	if s == nil || s.llm == nil {
		return ErrAPIKeyNotConfigured
	}

	rephrased, err := s.rephrase(ctx, message)
	if err != nil {
		return err
	}

	streamCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// rephrase sale junto con el primer fragmento; un fallo previo no emite nada.
	rephraseSent := false
	emitRephrase := func() error {
		if rephraseSent {
			return nil
		}
		rephraseSent = true
		if err := emit(domain.RephraseEvent(rephrased)); err != nil {
			return fmt.Errorf("emit rephrase: %w", err)
		}
		return nil
	}

	fragments := 0
	err = s.llm.GenerateStream(streamCtx, fmt.Sprintf(engineerPromptTemplate, rephrased), func(fragment string) error {
		if fragment == "" {
			return nil
		}
		if err := emitRephrase(); err != nil {
			return err
		}
		fragments++
		if err := emit(domain.ResponseEvent(fragment)); err != nil {
			return fmt.Errorf("emit response: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("generate response: %w", err)
	}
	if err := emitRephrase(); err != nil {
		return err
	}

	s.logger.Debug("chat stream finished", zap.Int("fragments", fragments))
	return nil
}

func (s *ChatService) rephrase(ctx context.Context, message string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.llm.Generate(callCtx, fmt.Sprintf(rephrasePromptTemplate, message))
	if err != nil {
		return "", fmt.Errorf("rephrase query: %w", err)
	}
	rephrased := cleanRephrase(raw)
	if rephrased == "" {
		return "", ErrEmptyRephrase
	}
	return rephrased, nil
}
