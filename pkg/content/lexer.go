package content

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// tokenKind classifies content stream tokens
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenString
	tokenName
	tokenOperator
	tokenArrayStart
	tokenArrayEnd
	tokenDictStart
	tokenDictEnd
)

type token struct {
	kind tokenKind
	num  float64
	str  []byte // string bytes, name or operator
}

// lexer splits a content stream into tokens
type lexer struct {
	r   *bufio.Reader
	pos int64
	buf []byte
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), buf: make([]byte, 0, 64)}
}

func (l *lexer) next() (token, error) {
	if err := l.skipSpace(); err != nil {
		if err == io.EOF {
			return token{kind: tokenEOF}, nil
		}
		return token{}, err
	}
	ch, err := l.peek()
	if err != nil {
		return token{}, err
	}

	switch ch {
	case '[':
		l.read()
		return token{kind: tokenArrayStart}, nil
	case ']':
		l.read()
		return token{kind: tokenArrayEnd}, nil
	case '<':
		l.read()
		if next, err := l.peek(); err == nil && next == '<' {
			l.read()
			return token{kind: tokenDictStart}, nil
		}
		return l.hexString()
	case '>':
		l.read()
		if next, err := l.read(); err != nil || next != '>' {
			return token{}, fmt.Errorf("offset %d: expected >>", l.pos)
		}
		return token{kind: tokenDictEnd}, nil
	case '(':
		return l.literalString()
	case '/':
		l.read()
		name, err := l.regular(true)
		return token{kind: tokenName, str: name}, err
	case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.number()
	default:
		op, err := l.regular(false)
		if err != nil {
			return token{}, err
		}
		if len(op) == 0 {
			return token{}, fmt.Errorf("offset %d: unexpected %q", l.pos, ch)
		}
		return token{kind: tokenOperator, str: op}, nil
	}
}

func (l *lexer) skipSpace() error {
	for {
		ch, err := l.peek()
		if err != nil {
			return err
		}
		switch {
		case isWhitespace(ch):
			l.read()
		case ch == '%':
			for ch != '\n' && ch != '\r' {
				if ch, err = l.read(); err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}

func (l *lexer) peek() (byte, error) {
	b, err := l.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (l *lexer) read() (byte, error) {
	b, err := l.r.ReadByte()
	if err == nil {
		l.pos++
	}
	return b, err
}

func (l *lexer) number() (token, error) {
	l.buf = l.buf[:0]
	for {
		ch, err := l.peek()
		if err != nil || !(ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9')) {
			break
		}
		l.read()
		l.buf = append(l.buf, ch)
	}
	v, err := strconv.ParseFloat(string(l.buf), 64)
	if err != nil {
		return token{}, fmt.Errorf("offset %d: invalid number %q", l.pos, l.buf)
	}
	return token{kind: tokenNumber, num: v}, nil
}

// regular reads a run of regular characters. Names decode #xx escapes.
func (l *lexer) regular(name bool) ([]byte, error) {
	var out []byte
	for {
		ch, err := l.peek()
		if err != nil || isDelimiter(ch) || isWhitespace(ch) {
			return out, nil
		}
		l.read()
		if name && ch == '#' {
			h1, err1 := l.read()
			h2, err2 := l.read()
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("offset %d: truncated name escape", l.pos)
			}
			v, err := strconv.ParseUint(string([]byte{h1, h2}), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("offset %d: invalid name escape #%c%c", l.pos, h1, h2)
			}
			ch = byte(v)
		}
		out = append(out, ch)
	}
}

func (l *lexer) literalString() (token, error) {
	l.read() // (
	var out []byte
	depth := 1
	for {
		ch, err := l.read()
		if err != nil {
			return token{}, fmt.Errorf("offset %d: unterminated string", l.pos)
		}
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return token{kind: tokenString, str: out}, nil
			}
		case '\\':
			esc, err := l.read()
			if err != nil {
				return token{}, fmt.Errorf("offset %d: unterminated string", l.pos)
			}
			switch esc {
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			case 'b':
				ch = '\b'
			case 'f':
				ch = '\f'
			case '\n':
				continue
			default:
				if esc >= '0' && esc <= '7' {
					v := int(esc - '0')
					for range 2 {
						d, err := l.peek()
						if err != nil || d < '0' || d > '7' {
							break
						}
						l.read()
						v = v*8 + int(d-'0')
					}
					ch = byte(v)
				} else {
					ch = esc
				}
			}
		}
		out = append(out, ch)
	}
}

func (l *lexer) hexString() (token, error) {
	var digits []byte
	for {
		ch, err := l.read()
		if err != nil {
			return token{}, fmt.Errorf("offset %d: unterminated hex string", l.pos)
		}
		if ch == '>' {
			break
		}
		if isWhitespace(ch) {
			continue
		}
		if !isHexDigit(ch) {
			return token{}, fmt.Errorf("offset %d: invalid hex digit %q", l.pos, ch)
		}
		digits = append(digits, ch)
	}
	if len(digits)%2 != 0 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return token{kind: tokenString, str: out}, nil
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == 0
}

func isDelimiter(ch byte) bool {
	return ch == '(' || ch == ')' || ch == '<' || ch == '>' ||
		ch == '[' || ch == ']' || ch == '{' || ch == '}' ||
		ch == '/' || ch == '%'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}
