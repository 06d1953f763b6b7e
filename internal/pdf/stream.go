package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// maxDecoded bounds the size of one decoded stream (64 MB).
const maxDecoded = 64 << 20

// decodeStream applies the filters named in the stream dictionary.
func decodeStream(d Dict, data []byte) ([]byte, error) {
	var filters []string
	switch f := d["Filter"]; {
	case f == nil:
		return data, nil
	case f.Kind == Name:
		filters = []string{f.Name}
	case f.Kind == Array:
		for _, o := range f.Array {
			if o.Kind == Name {
				filters = append(filters, o.Name)
			}
		}
	}
	for _, name := range filters {
		var err error
		switch name {
		case "FlateDecode", "Fl":
			data, err = inflate(data)
		case "ASCIIHexDecode", "AHx":
			data = newScanner(append([]byte{'<'}, data...), 0).hex().Str
		default:
			err = fmt.Errorf("unsupported filter %s", name)
		}
		if err != nil {
			return nil, fmt.Errorf("pdf: %s: %w", name, err)
		}
	}
	return data, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxDecoded+1))
	if err != nil && len(out) == 0 {
		return nil, err
	}
	if len(out) > maxDecoded {
		return nil, fmt.Errorf("decoded stream exceeds %d bytes", maxDecoded)
	}
	// A truncated tail still yields the text decoded so far.
	return out, nil
}

var utf16BOM = []byte{0xFE, 0xFF}

// decodeTextString decodes a string from the document information
// dictionary: UTF-16BE when it carries a byte order mark, otherwise a
// single-byte encoding.
func decodeTextString(b []byte) string {
	if bytes.HasPrefix(b, utf16BOM) {
		s, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		if err == nil {
			return string(s)
		}
	}
	return decodeWinAnsi(b)
}

// decodeWinAnsi decodes bytes shown with a WinAnsiEncoding font.
func decodeWinAnsi(b []byte) string {
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
