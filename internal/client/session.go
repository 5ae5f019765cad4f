package client

import (
	"sync"

	"engineer-grok/internal/domain"
)

// UpsertFunc se invoca despues de cada alta o reemplazo de un mensaje.
// Para un mismo ID puede llamarse varias veces con contenido creciente.
type UpsertFunc func(msg domain.ChatMessage)

// Session es el estado de la conversacion en memoria: una lista ordenada
// donde solo se agregan mensajes, salvo el reemplazo por ID de Upsert.
type Session struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	index    map[string]int
	loading  bool
	onUpsert UpsertFunc
}

func NewSession(onUpsert UpsertFunc) *Session {
	return &Session{
		index:    make(map[string]int),
		onUpsert: onUpsert,
	}
}

// Upsert reemplaza el mensaje con el mismo ID o lo agrega al final.
func (s *Session) Upsert(msg domain.ChatMessage) {
	s.mu.Lock()
	if i, ok := s.index[msg.ID]; ok {
		s.messages[i] = msg
	} else {
		s.index[msg.ID] = len(s.messages)
		s.messages = append(s.messages, msg)
	}
	cb := s.onUpsert
	s.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// Messages devuelve una copia de los mensajes en orden.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Loading reporta si hay un request en curso.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// begin marca el inicio de un request; false si ya habia uno en curso.
func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Session) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
