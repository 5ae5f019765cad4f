package domain

// EventType es la etiqueta de un registro del stream.
type EventType string

const (
	EventRephrase EventType = "rephrase"
	EventResponse EventType = "response"
)

// Valid reporta si la etiqueta es una de las conocidas.
func (t EventType) Valid() bool {
	switch t {
	case EventRephrase, EventResponse:
		return true
	default:
		return false
	}
}

// StreamEvent es un registro del protocolo: una linea JSON terminada en '\n'.
type StreamEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

func RephraseEvent(content string) StreamEvent {
	return StreamEvent{Type: EventRephrase, Content: content}
}

func ResponseEvent(fragment string) StreamEvent {
	return StreamEvent{Type: EventResponse, Content: fragment}
}
