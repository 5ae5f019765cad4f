package client

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxLineSize limita lo que se acumula esperando un '\n'.
const MaxLineSize = 1024 * 1024

var ErrLineTooLong = errors.New("stream line too long")

// LineReader parte un stream de bytes en lineas no vacias.
// Un fragmento sin '\n' queda en buffer hasta la siguiente lectura, asi que
// no depende de que el transporte entregue lineas completas.
type LineReader struct {
	br  *bufio.Reader
	max int
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReader(r), max: MaxLineSize}
}

// Next devuelve la siguiente linea no vacia sin el separador.
// Al final del stream entrega la ultima linea sin terminar (si hay) y luego io.EOF.
// Ante un error de lectura el fragmento incompleto se descarta.
// Una linea mayor a MaxLineSize se consume entera y devuelve ErrLineTooLong;
// se puede seguir llamando a Next.
func (l *LineReader) Next() (string, error) {
	for {
		raw, err := l.readLine()
		if err != nil && err != io.EOF {
			return "", err
		}
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (l *LineReader) readLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := l.br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > l.max {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if tooLong && (err == nil || err == io.EOF) {
			return "", ErrLineTooLong
		}
		return string(buf), err
	}
}
