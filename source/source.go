// Package source loads vecl programs from files and streams.
package source

import (
	"bytes"
	"io"
	"os"

	"github.com/sergev/vecl/parser"
)

// StdinName is the argument that selects standard input.
const StdinName = "-"

// File is a loaded program text together with the name used in diagnostics.
type File struct {
	Name string
	Text string
}

// Parse parses the file text.
func (f *File) Parse(opts ...parser.Option) (*parser.Program, error) {
	return parser.Parse(f.Text, opts...)
}

// Open loads path, or stdin when path is "-". A leading #! line is blanked.
func Open(path string, stdin io.Reader) (*File, error) {
	if path == StdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return &File{Name: "<stdin>", Text: string(skipShebang(data))}, nil
	}
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return nil, err
	}
	return &File{Name: path, Text: string(data)}, nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return skipShebang(data), nil
}

// skipShebang blanks a leading #! line with spaces so that offsets, lines
// and columns in diagnostics still match the file.
func skipShebang(data []byte) []byte {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return data
	}
	end := bytes.IndexByte(data, '\n')
	if end < 0 {
		end = len(data)
	}
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i < end; i++ {
		if out[i] != '\r' {
			out[i] = ' '
		}
	}
	return out
}
