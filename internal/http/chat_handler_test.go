package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"engineer-grok/internal/domain"
	"engineer-grok/internal/llm"
	"engineer-grok/internal/service"
)

func newTestRouter(client llm.LLMClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewChatService(client, time.Second, logger)
	return NewRouter(logger, NewChatHandler(logger, svc))
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeRecords(t *testing.T, body string) []domain.StreamEvent {
	t.Helper()
	var out []domain.StreamEvent
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		var ev domain.StreamEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid record %q: %v", line, err)
		}
		out = append(out, ev)
	}
	return out
}

func TestPostChat_StreamsRecords(t *testing.T) {
	client := &llm.MockClient{
		Response:  "Techniques for optimizing loop performance",
		Fragments: []string{"Unroll ", "the <loop> ", "& profile."},
	}
	r := newTestRouter(client)

	rec := postChat(r, `{"message":"optimize a loop"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}
	if rec.Header().Get("Cache-Control") != "no-cache" {
		t.Fatalf("expected no-cache")
	}
	if !strings.HasSuffix(rec.Body.String(), "\n") {
		t.Fatalf("expected newline terminated body")
	}
	if !strings.Contains(rec.Body.String(), `<loop>`) {
		t.Fatalf("expected html characters unescaped, got %s", rec.Body.String())
	}

	events := decodeRecords(t, rec.Body.String())
	if len(events) != 4 {
		t.Fatalf("expected 4 records, got %d", len(events))
	}
	if events[0] != domain.RephraseEvent("Techniques for optimizing loop performance") {
		t.Fatalf("unexpected first record %+v", events[0])
	}
	var b strings.Builder
	for _, ev := range events[1:] {
		if ev.Type != domain.EventResponse {
			t.Fatalf("expected response record, got %+v", ev)
		}
		b.WriteString(ev.Content)
	}
	if b.String() != "Unroll the <loop> & profile." {
		t.Fatalf("unexpected content %q", b.String())
	}
}

func TestPostChat_ValidationErrors(t *testing.T) {
	cases := []string{
		``,
		`{}`,
		`{"message":""}`,
		`{"message":"   "}`,
		`{"message":42}`,
		`{not json`,
	}
	for _, body := range cases {
		client := &llm.MockClient{Response: "r"}
		r := newTestRouter(client)
		rec := postChat(r, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		if rec.Body.String() != `{"error":"Message is required"}` {
			t.Fatalf("body %q: unexpected response %s", body, rec.Body.String())
		}
		if client.Calls() != 0 {
			t.Fatalf("body %q: expected no model calls", body)
		}
	}
}

func TestPostChat_MissingAPIKey(t *testing.T) {
	r := newTestRouter(nil)
	rec := postChat(r, `{"message":"hola"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"API key not configured"}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestPostChat_ValidationBeforeConfiguration(t *testing.T) {
	r := newTestRouter(nil)
	rec := postChat(r, `{"message":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPostChat_UpstreamFailure(t *testing.T) {
	client := &llm.MockClient{Err: errors.New("quota exceeded: secret details")}
	r := newTestRouter(client)

	rec := postChat(r, `{"message":"hola"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"Failed to process request"}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestPostChat_MidStreamFailureTruncates(t *testing.T) {
	client := &llm.MockClient{Response: "r", Fragments: []string{"a"}, StreamErr: errors.New("reset")}
	r := newTestRouter(client)

	rec := postChat(r, `{"message":"hola"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for already started stream, got %d", rec.Code)
	}
	events := decodeRecords(t, rec.Body.String())
	if len(events) != 2 {
		t.Fatalf("expected 2 records, got %d: %s", len(events), rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected no terminal error record, got %s", rec.Body.String())
	}
}

func TestPostChat_ResponseCallFailsBeforeFirstFragment(t *testing.T) {
	client := &llm.MockClient{Response: "rephrased", StreamErr: errors.New("quota exceeded")}
	r := newTestRouter(client)

	rec := postChat(r, `{"message":"hola"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `{"error":"Failed to process request"}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "rephrase") {
		t.Fatalf("rephrase record must not be written")
	}
}
