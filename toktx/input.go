package toktx

import (
	"io"
	"os"

	"github.com/saltyorg/ktx/args"
)

// InputSource supplies the positional input argument(s) of a conversion.
type InputSource interface {
	// AddArgsTo appends the input path token(s) to c. Sources backed by
	// memory write a temporary file first.
	AddArgsTo(c args.Consumer) error
}

// TempRecorder is implemented by consumers that want to know about the
// temporary files an InputSource creates.
type TempRecorder interface {
	RecordTemp(path string)
}

// Path is a single input file, passed through verbatim.
type Path string

func (p Path) AddArgsTo(c args.Consumer) error {
	c.AddArg(string(p))
	return nil
}

// Paths is several input files in order, e.g. the six faces of a cubemap
// or one image per mip level.
type Paths []string

func (p Paths) AddArgsTo(c args.Consumer) error {
	for _, path := range p {
		c.AddArg(path)
	}
	return nil
}

// Bytes is an encoded image held in memory. It is written whole to
// TempPath() before toktx runs, since toktx only reads files. Fixed-size
// arrays can be passed as Bytes(arr[:]).
type Bytes []byte

func (b Bytes) AddArgsTo(c args.Consumer) error {
	path := TempPath()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &SourcePathError{Err: err}
	}
	if r, ok := c.(TempRecorder); ok {
		r.RecordTemp(path)
	}
	c.AddArg(path)
	return nil
}

// Reader returns a source that drains r into memory and then behaves like
// Bytes. Reading happens when the conversion is executed.
func Reader(r io.Reader) InputSource {
	return readerSource{r}
}

type readerSource struct {
	r io.Reader
}

func (s readerSource) AddArgsTo(c args.Consumer) error {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return &SourcePathError{Err: err}
	}
	return Bytes(data).AddArgsTo(c)
}
