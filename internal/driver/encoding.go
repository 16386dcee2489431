package driver

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"vfmt/internal/source"
)

// Encoding records how a file was stored on disk so the canonical text can
// be written back the same way.
type Encoding struct {
	// UTF16 is nil for UTF-8 input.
	UTF16 *unicode.Endianness
	BOM   bool
	CRLF  bool
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) codec() encoding.Encoding {
	return unicode.UTF16(*e.UTF16, unicode.UseBOM)
}

// decode converts raw file bytes to the LF-only UTF-8 text the formatter
// works on.
func decode(raw []byte) ([]byte, Encoding, error) {
	var enc Encoding
	var order unicode.Endianness
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE):
		order = unicode.LittleEndian
		enc.UTF16 = &order
	case bytes.HasPrefix(raw, bomUTF16BE):
		order = unicode.BigEndian
		enc.UTF16 = &order
	}
	text := raw
	if enc.UTF16 != nil {
		decoded, err := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return nil, enc, fmt.Errorf("decode utf-16: %w", err)
		}
		text = decoded
	} else {
		text, enc.BOM = source.RemoveBOM(text)
	}
	text, enc.CRLF = source.NormalizeCRLF(text)
	return text, enc, nil
}

// encode is the inverse of decode.
func encode(text []byte, enc Encoding) ([]byte, error) {
	if enc.CRLF {
		text = source.RestoreCRLF(text)
	}
	if enc.UTF16 != nil {
		out, err := enc.codec().NewEncoder().Bytes(text)
		if err != nil {
			return nil, fmt.Errorf("encode utf-16: %w", err)
		}
		return out, nil
	}
	if enc.BOM {
		text = append([]byte{0xEF, 0xBB, 0xBF}, text...)
	}
	return text, nil
}
