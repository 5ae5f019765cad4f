package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"engineer-grok/internal/domain"
	"engineer-grok/internal/service"
)

const (
	errMessageRequired = "Message is required"
	errAPIKeyMissing   = "API key not configured"
	errProcessFailed   = "Failed to process request"
)

// ChatHandler expone el orquestador como stream de registros JSON por linea.
type ChatHandler struct {
	logger *zap.Logger
	chat   *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chat *service.ChatService) *ChatHandler {
	return &ChatHandler{logger: logger, chat: chat}
}

// PostChat maneja POST /api/chat.
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessageRequired})
		return
	}

	w := &recordWriter{c: c}
	err := h.chat.Stream(c.Request.Context(), req.Message, w.Emit)
	switch {
	case err == nil:
		w.start()
	case errors.Is(err, service.ErrMessageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessageRequired})
	case errors.Is(err, service.ErrAPIKeyNotConfigured):
		h.logger.Error("chat request rejected", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errAPIKeyMissing})
	case w.started:
		// Los registros ya enviados no se pueden deshacer: el cliente ve el stream truncado.
		h.logger.Error("chat stream interrupted", zap.Error(err), zap.Int("records", w.records))
	default:
		h.logger.Error("chat request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errProcessFailed})
	}
}

// recordWriter escribe cada evento como una linea JSON y hace flush inmediato.
// Las cabeceras del stream se envian con el primer registro.
type recordWriter struct {
	c       *gin.Context
	buf     bytes.Buffer
	started bool
	records int
}

func (w *recordWriter) start() {
	if w.started {
		return
	}
	w.started = true
	w.c.Header("Content-Type", "text/event-stream")
	w.c.Header("Cache-Control", "no-cache")
	w.c.Header("Connection", "keep-alive")
	w.c.Status(http.StatusOK)
	w.c.Writer.WriteHeaderNow()
}

func (w *recordWriter) Emit(ev domain.StreamEvent) error {
	w.buf.Reset()
	enc := json.NewEncoder(&w.buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return err
	}

	w.start()
	if _, err := w.c.Writer.Write(w.buf.Bytes()); err != nil {
		return err
	}
	w.c.Writer.Flush()
	w.records++
	return nil
}
