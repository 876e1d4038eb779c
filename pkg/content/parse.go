package content

import (
	"bytes"
	"fmt"
	"io"
)

// Operand is a content stream operand: float64, bool, nil, Name, []byte
// (string), []Operand (array) or map[Name]Operand (inline dictionary)
type Operand any

// Name is a PDF name without the leading slash
type Name string

// Operation is one operator with its operands
type Operation struct {
	Operator string
	Operands []Operand
}

// Parse splits a decoded content stream into operations
func Parse(r io.Reader) ([]Operation, error) {
	lx := newLexer(r)
	var ops []Operation
	var operands []Operand
	for {
		tok, err := lx.next()
		if err != nil {
			return ops, err
		}
		switch tok.kind {
		case tokenEOF:
			if len(operands) > 0 {
				return ops, fmt.Errorf("%d operands without operator at end of stream", len(operands))
			}
			return ops, nil
		case tokenOperator:
			if v, ok := keywordValue(tok); ok {
				operands = append(operands, v)
				continue
			}
			if string(tok.str) == "BI" {
				if err := skipInlineImage(lx); err != nil {
					return ops, err
				}
				ops = append(ops, Operation{Operator: "BI"})
				operands = nil
				continue
			}
			ops = append(ops, Operation{Operator: string(tok.str), Operands: operands})
			operands = nil
		default:
			v, err := operand(lx, tok)
			if err != nil {
				return ops, err
			}
			operands = append(operands, v)
		}
	}
}

// ParseBytes is Parse on an in-memory stream
func ParseBytes(data []byte) ([]Operation, error) {
	return Parse(bytes.NewReader(data))
}

func operand(lx *lexer, tok token) (Operand, error) {
	switch tok.kind {
	case tokenNumber:
		return tok.num, nil
	case tokenString:
		return tok.str, nil
	case tokenName:
		return Name(tok.str), nil
	case tokenArrayStart:
		arr := []Operand{}
		for {
			t, err := lx.next()
			if err != nil {
				return nil, err
			}
			if t.kind == tokenArrayEnd {
				return arr, nil
			}
			if t.kind == tokenEOF {
				return nil, fmt.Errorf("offset %d: unterminated array", lx.pos)
			}
			v, err := operand(lx, t)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	case tokenDictStart:
		dict := map[Name]Operand{}
		for {
			t, err := lx.next()
			if err != nil {
				return nil, err
			}
			if t.kind == tokenDictEnd {
				return dict, nil
			}
			if t.kind != tokenName {
				return nil, fmt.Errorf("offset %d: dictionary key is not a name", lx.pos)
			}
			vt, err := lx.next()
			if err != nil {
				return nil, err
			}
			v, err := operand(lx, vt)
			if err != nil {
				return nil, err
			}
			dict[Name(t.str)] = v
		}
	default:
		if v, ok := keywordValue(tok); ok {
			return v, nil
		}
		return nil, fmt.Errorf("offset %d: unexpected token", lx.pos)
	}
}

// keywordValue maps the keywords true, false and null to operands
func keywordValue(tok token) (Operand, bool) {
	if tok.kind != tokenOperator {
		return nil, false
	}
	switch string(tok.str) {
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	}
	return nil, false
}

// skipInlineImage consumes an inline image up to and including EI
func skipInlineImage(lx *lexer) error {
	for {
		tok, err := lx.next()
		if err != nil {
			return err
		}
		if tok.kind == tokenEOF {
			return fmt.Errorf("offset %d: unterminated inline image", lx.pos)
		}
		if tok.kind == tokenOperator && string(tok.str) == "ID" {
			break
		}
	}
	// binary data: scan for whitespace + "EI" + delimiter
	var prev [3]byte
	for {
		ch, err := lx.read()
		if err != nil {
			return fmt.Errorf("offset %d: unterminated inline image", lx.pos)
		}
		prev[0], prev[1], prev[2] = prev[1], prev[2], ch
		if isWhitespace(prev[0]) && prev[1] == 'E' && prev[2] == 'I' {
			next, err := lx.peek()
			if err == io.EOF || isWhitespace(next) || isDelimiter(next) {
				return nil
			}
		}
	}
}

// CountOperators returns how often each operator occurs
func CountOperators(ops []Operation) map[string]int {
	counts := make(map[string]int)
	for _, op := range ops {
		counts[op.Operator]++
	}
	return counts
}
