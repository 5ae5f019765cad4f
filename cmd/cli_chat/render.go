package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"engineer-grok/internal/domain"
)

// terminalRenderer implementa el callback de upsert de la sesion para una terminal.
// Sin markdown imprime solo el delta de cada actualizacion del asistente;
// con markdown acumula y renderiza con glamour al terminar el request.
type terminalRenderer struct {
	out      io.Writer
	md       *glamour.TermRenderer
	printed  map[string]int
	pending  []string
	contents map[string]string
}

func newTerminalRenderer(out io.Writer, markdown bool, style string) (*terminalRenderer, error) {
	r := &terminalRenderer{
		out:      out,
		printed:  make(map[string]int),
		contents: make(map[string]string),
	}
	if !markdown {
		return r, nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.md = md
	return r, nil
}

func (r *terminalRenderer) Upsert(msg domain.ChatMessage) {
	switch msg.Kind {
	case domain.KindRephrase:
		fmt.Fprintf(r.out, "[rephrased] %s\n", msg.Content)
	case domain.KindAssistant:
		if r.md != nil {
			if _, ok := r.contents[msg.ID]; !ok {
				r.pending = append(r.pending, msg.ID)
			}
			r.contents[msg.ID] = msg.Content
			return
		}
		n, seen := r.printed[msg.ID]
		if !seen {
			fmt.Fprint(r.out, "Assistant: ")
		}
		if len(msg.Content) > n {
			fmt.Fprint(r.out, msg.Content[n:])
		}
		r.printed[msg.ID] = len(msg.Content)
	}
}

// Flush cierra la salida del request actual.
func (r *terminalRenderer) Flush() error {
	if r.md == nil {
		if len(r.printed) > 0 {
			fmt.Fprintln(r.out)
		}
		r.printed = make(map[string]int)
		return nil
	}

	for _, id := range r.pending {
		out, err := r.md.Render(r.contents[id])
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprint(r.out, out)
	}
	r.pending = nil
	r.contents = make(map[string]string)
	return nil
}
