package domjson

import (
	"io"

	"github.com/mcvoid/domjson/builder"
	"github.com/mcvoid/domjson/internal/diag"
	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/sax"
	"github.com/mcvoid/domjson/serializer"
	"github.com/mcvoid/domjson/value"
)

// Decoder drives a resumable parse across however many chunks the caller
// has on hand. Unlike Parse, it never needs the whole document in memory
// at once: Write may be
// called any number of times with successive slices of the same
// document.
type Decoder struct {
	parser  *sax.Parser
	builder *builder.Builder
}

// NewDecoder returns a Decoder that builds its tree against res, using
// opts for grammar/numeric options.
func NewDecoder(res memres.Resource, opts sax.Options) *Decoder {
	b := builder.New(res)
	return &Decoder{parser: sax.NewParser(b, opts), builder: b}
}

// Write feeds the next chunk of input. more reports whether additional
// chunks will follow; pass false on the final call so the decoder can
// validate end-of-document state (an in-progress number is only
// terminated once EOF is known, mirroring sax.Parser.WriteSome).
func (d *Decoder) Write(more bool, data []byte) (consumed int, err error) {
	n, err := d.parser.WriteSome(more, data)
	if err != nil {
		diag.Logger.Debug().Err(err).Int("consumed", n).Msg("domjson: decoder suspended on error")
		return n, err
	}
	return n, nil
}

// Value returns the decoded tree. Only meaningful after a final Write
// call with more=false has returned a nil error.
func (d *Decoder) Value() (value.Value, error) {
	return d.builder.Value()
}

// Reset discards any in-progress document so the Decoder can be reused.
func (d *Decoder) Reset() {
	d.parser.Reset()
	d.builder.Reset()
}

// StreamParse decodes a complete document from r, feeding it to a Decoder
// one buffer at a time rather than reading the whole input into memory
// first, as ParseReader's read-all-then-parse convenience does.
func StreamParse(r io.Reader, res memres.Resource, opts sax.Options) (value.Value, error) {
	d := NewDecoder(res, opts)
	buf := make([]byte, 64*1024)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, err := d.Write(true, buf[:n]); err != nil {
				return value.Value{}, err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return value.Value{}, readErr
		}
	}
	if _, err := d.Write(false, nil); err != nil {
		return value.Value{}, err
	}
	return d.Value()
}

// StreamSerialize renders v as canonical JSON into w a chunk at a time,
// rather than building the whole output in memory the way Serialize
// does.
func StreamSerialize(v value.Value, w io.Writer) error {
	s := serializer.New()
	s.Reset(v)
	buf := make([]byte, 64*1024)
	for !s.Done() {
		n, err := s.Read(buf)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}
