package catalog

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// maxHeaderLine límite de la primera línea al detectar el delimitador.
const maxHeaderLine = 1 << 20

// DetectDelimiter devuelve '\t' si la primera línea contiene un tab y ',' en otro caso.
// r debe llegar sin BOM (ver Upload.OpenText).
func DetectDelimiter(r io.Reader) (rune, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var line strings.Builder
	for line.Len() < maxHeaderLine {
		chunk, err := br.ReadSlice('\n')
		line.Write(chunk)
		if err == nil || errors.Is(err, io.EOF) {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return 0, err
		}
	}
	if strings.ContainsRune(line.String(), '\t') {
		return '\t', nil
	}
	return ',', nil
}
