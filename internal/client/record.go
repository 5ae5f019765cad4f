package client

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"engineer-grok/internal/domain"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrUnknownRecord   = errors.New("unknown record type")
)

// DecodeRecord interpreta una linea del stream como StreamEvent.
func DecodeRecord(line string) (domain.StreamEvent, error) {
	if !gjson.Valid(line) {
		return domain.StreamEvent{}, ErrMalformedRecord
	}
	parsed := gjson.Parse(line)
	if !parsed.IsObject() {
		return domain.StreamEvent{}, ErrMalformedRecord
	}

	typ := parsed.Get("type")
	if typ.Type != gjson.String {
		return domain.StreamEvent{}, fmt.Errorf("%w: missing type", ErrMalformedRecord)
	}
	eventType := domain.EventType(typ.String())
	if !eventType.Valid() {
		return domain.StreamEvent{}, fmt.Errorf("%w: %q", ErrUnknownRecord, eventType)
	}

	content := parsed.Get("content")
	if content.Exists() && content.Type != gjson.String {
		return domain.StreamEvent{}, fmt.Errorf("%w: content is not a string", ErrMalformedRecord)
	}
	return domain.StreamEvent{Type: eventType, Content: content.String()}, nil
}
