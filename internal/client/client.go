package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"engineer-grok/internal/domain"
)

// ErrorReply es el texto que ve el usuario cuando el request falla.
const ErrorReply = "Sorry, an error occurred. Please try again."

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("request already in flight")
)

// Client envia mensajes al endpoint de chat y vuelca el stream en una Session.
type Client struct {
	url     string
	http    *http.Client
	session *Session
	logger  *zap.Logger
	newID   func() string
}

type Option func(*Client)

// WithHTTPClient reemplaza el cliente HTTP. No debe tener Timeout global:
// el stream dura lo que tarde el modelo.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(url string, session *Session, opts ...Option) *Client {
	c := &Client{
		url:     url,
		http:    &http.Client{},
		session: session,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Submit agrega el mensaje del usuario, hace el request y procesa el stream
// hasta el final. Los fallos de red o de status terminan en un mensaje de
// error del asistente; solo devuelve error si el mensaje no se envio.
func (c *Client) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if !c.session.begin() {
		return ErrRequestInFlight
	}
	defer c.session.finish()

	c.session.Upsert(domain.ChatMessage{ID: c.newID(), Kind: domain.KindUser, Content: text})

	if err := c.send(ctx, text); err != nil {
		c.logger.Error("chat request failed", zap.Error(err))
		c.session.Upsert(domain.ChatMessage{ID: c.newID(), Kind: domain.KindAssistant, Content: ErrorReply})
	}
	return nil
}

func (c *Client) send(ctx context.Context, text string) error {
	body, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: text})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chat http error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return c.consume(resp.Body)
}

// streamState guarda los mensajes creados por un request.
type streamState struct {
	rephraseID  string
	assistantID string
	answer      strings.Builder
}

// consume lee registros en orden y actualiza la sesion. Las lineas invalidas
// se registran y se saltean; un error de lectura corta el procesamiento.
func (c *Client) consume(r io.Reader) error {
	lines := NewLineReader(r)
	var st streamState
	for {
		line, err := lines.Next()
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, ErrLineTooLong) {
			c.logger.Warn("skipping oversized stream line", zap.Int("max_bytes", MaxLineSize))
			continue
		}
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}

		ev, err := DecodeRecord(line)
		if err != nil {
			c.logger.Warn("skipping stream record", zap.Error(err), zap.String("line", line))
			continue
		}
		c.apply(&st, ev)
	}
}

func (c *Client) apply(st *streamState, ev domain.StreamEvent) {
	switch ev.Type {
	case domain.EventRephrase:
		if st.rephraseID != "" {
			c.logger.Debug("ignoring duplicate rephrase record")
			return
		}
		st.rephraseID = c.newID()
		c.session.Upsert(domain.ChatMessage{ID: st.rephraseID, Kind: domain.KindRephrase, Content: ev.Content})
	case domain.EventResponse:
		if st.assistantID == "" {
			st.assistantID = c.newID()
		}
		st.answer.WriteString(ev.Content)
		c.session.Upsert(domain.ChatMessage{ID: st.assistantID, Kind: domain.KindAssistant, Content: st.answer.String()})
	}
}
