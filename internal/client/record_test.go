package client

import (
	"errors"
	"testing"

	"engineer-grok/internal/domain"
)

func TestDecodeRecord(t *testing.T) {
	ev, err := DecodeRecord(`{"type":"response","content":"a \"quoted\" <b>"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ev != domain.ResponseEvent(`a "quoted" <b>`) {
		t.Fatalf("unexpected event %+v", ev)
	}

	ev, err = DecodeRecord(`{"type":"rephrase"}`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ev.Type != domain.EventRephrase || ev.Content != "" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestDecodeRecord_Rejects(t *testing.T) {
	cases := []struct {
		line string
		want error
	}{
		{`{not json`, ErrMalformedRecord},
		{`[1,2]`, ErrMalformedRecord},
		{`"response"`, ErrMalformedRecord},
		{`{"content":"x"}`, ErrMalformedRecord},
		{`{"type":1,"content":"x"}`, ErrMalformedRecord},
		{`{"type":"response","content":3}`, ErrMalformedRecord},
		{`{"type":"error","content":"x"}`, ErrUnknownRecord},
		{`{"type":"RESPONSE","content":"x"}`, ErrUnknownRecord},
	}
	for _, tc := range cases {
		if _, err := DecodeRecord(tc.line); !errors.Is(err, tc.want) {
			t.Fatalf("DecodeRecord(%s): expected %v, got %v", tc.line, tc.want, err)
		}
	}
}
