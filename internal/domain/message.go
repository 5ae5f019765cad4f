package domain

// MessageKind identifica el autor logico de un mensaje en la conversacion.
type MessageKind string

const (
	KindUser      MessageKind = "user"
	KindRephrase  MessageKind = "rephrase"
	KindAssistant MessageKind = "assistant"
)

// ChatMessage es una entrada de la conversacion en memoria del cliente.
// Solo los mensajes KindAssistant cambian de contenido despues de creados.
type ChatMessage struct {
	ID      string      `json:"id"`
	Kind    MessageKind `json:"kind"`
	Content string      `json:"content"`
}
