package pdf

import (
	"bytes"
	"errors"
	"strconv"
)

const maxDepth = 64

var errTooDeep = errors.New("pdf: objects nested too deeply")

// scanner is a recursive-descent reader of PDF syntax. It is used both for
// file structure and for page content streams.
type scanner struct {
	data  []byte
	pos   int
	depth int
}

func newScanner(data []byte, pos int) *scanner {
	return &scanner{data: data, pos: pos}
}

func (s *scanner) eof() bool { return s.pos >= len(s.data) }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skip moves past whitespace and comments.
func (s *scanner) skip() {
	for !s.eof() {
		switch c := s.data[s.pos]; {
		case c == '%':
			for !s.eof() && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case isSpace(c):
			s.pos++
		default:
			return
		}
	}
}

// keyword consumes kw if it is next in the input.
func (s *scanner) keyword(kw string) bool {
	s.skip()
	if bytes.HasPrefix(s.data[s.pos:], []byte(kw)) {
		s.pos += len(kw)
		return true
	}
	return false
}

// token reads a run of regular characters.
func (s *scanner) token() string {
	s.skip()
	start := s.pos
	for !s.eof() && !isSpace(s.data[s.pos]) && !isDelim(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// object reads the next object. Unknown tokens read as null.
func (s *scanner) object() (*Object, error) {
	if s.depth >= maxDepth {
		return nil, errTooDeep
	}
	s.depth++
	defer func() { s.depth-- }()

	s.skip()
	if s.eof() {
		return null, nil
	}
	switch c := s.data[s.pos]; {
	case c == '(':
		return s.literal(), nil
	case c == '<' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '<':
		return s.dict()
	case c == '<':
		return s.hex(), nil
	case c == '/':
		return s.name(), nil
	case c == '[':
		return s.array()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return s.number(), nil
	}
	switch s.token() {
	case "true":
		return &Object{Kind: Bool, Bool: true}, nil
	case "false":
		return &Object{Kind: Bool}, nil
	case "":
		s.pos++
	}
	return null, nil
}

func (s *scanner) literal() *Object {
	s.pos++
	var buf bytes.Buffer
	for depth := 1; !s.eof(); {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
		case ')':
			if depth--; depth == 0 {
				return &Object{Kind: String, Str: buf.Bytes()}
			}
		case '\\':
			s.escape(&buf)
			continue
		}
		buf.WriteByte(c)
	}
	return &Object{Kind: String, Str: buf.Bytes()}
}

func (s *scanner) escape(buf *bytes.Buffer) {
	if s.eof() {
		return
	}
	c := s.data[s.pos]
	s.pos++
	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		if !s.eof() && s.data[s.pos] == '\n' {
			s.pos++
		}
	case '\n':
	default:
		if c < '0' || c > '7' {
			buf.WriteByte(c)
			return
		}
		v := int(c - '0')
		for i := 0; i < 2 && !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
			v = v*8 + int(s.data[s.pos]-'0')
			s.pos++
		}
		buf.WriteByte(byte(v))
	}
}

func (s *scanner) hex() *Object {
	s.pos++
	var digits []byte
	for !s.eof() && s.data[s.pos] != '>' {
		if c := s.data[s.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		out[i] = unhex(digits[2*i])<<4 | unhex(digits[2*i+1])
	}
	return &Object{Kind: String, Str: out}
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

func (s *scanner) name() *Object {
	s.pos++
	var buf bytes.Buffer
	for !s.eof() {
		c := s.data[s.pos]
		if isSpace(c) || isDelim(c) {
			break
		}
		if c == '#' && s.pos+2 < len(s.data) {
			buf.WriteByte(unhex(s.data[s.pos+1])<<4 | unhex(s.data[s.pos+2]))
			s.pos += 3
			continue
		}
		buf.WriteByte(c)
		s.pos++
	}
	return &Object{Kind: Name, Name: buf.String()}
}

func (s *scanner) array() (*Object, error) {
	s.pos++
	arr := &Object{Kind: Array}
	for {
		s.skip()
		if s.eof() {
			return arr, nil
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return arr, nil
		}
		o, err := s.object()
		if err != nil {
			return nil, err
		}
		arr.Array = append(arr.Array, o)
	}
}

// dict reads a dictionary and the stream that may follow it.
func (s *scanner) dict() (*Object, error) {
	s.pos += 2
	d := Dict{}
	for {
		s.skip()
		if s.eof() {
			break
		}
		if s.keyword(">>") {
			break
		}
		if s.data[s.pos] != '/' {
			s.pos++
			continue
		}
		key := s.name().Name
		val, err := s.object()
		if err != nil {
			return nil, err
		}
		d[key] = val
	}

	save := s.pos
	if !s.keyword("stream") {
		s.pos = save
		return &Object{Kind: Dictionary, Dict: d}, nil
	}
	if !s.eof() && s.data[s.pos] == '\r' {
		s.pos++
	}
	if !s.eof() && s.data[s.pos] == '\n' {
		s.pos++
	}
	start := s.pos
	end := -1
	if n, ok := d.Int("Length"); ok && start+int(n) <= len(s.data) {
		end = start + int(n)
	} else if i := bytes.Index(s.data[start:], []byte("endstream")); i >= 0 {
		end = start + i
	} else {
		end = len(s.data)
	}
	s.pos = end
	s.keyword("endstream")
	return &Object{Kind: Stream, Dict: d, Data: s.data[start:end]}, nil
}

// number reads an integer, a real or an indirect reference.
func (s *scanner) number() *Object {
	tok := s.token()
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return null
		}
		return &Object{Kind: Real, Real: f}
	}

	after := s.pos
	if gen, err := strconv.Atoi(s.token()); err == nil && s.keyword("R") {
		if s.eof() || isSpace(s.data[s.pos]) || isDelim(s.data[s.pos]) {
			return &Object{Kind: Ref, Ref: Reference{Number: int(n), Gen: gen}}
		}
	}
	s.pos = after
	return &Object{Kind: Int, Int: n}
}
