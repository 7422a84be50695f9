package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"typecaster/typedesc"
)

var (
	ErrUnknownType = errors.New("unknown type name")
	ErrBadTypeExpr = errors.New("malformed type expression")
	ErrBadLiteral  = errors.New("malformed literal value")
)

var builtinTypes = map[string]*typedesc.Type{
	"any":      typedesc.Any,
	"nil":      typedesc.Nil,
	"bool":     typedesc.Of[bool](),
	"string":   typedesc.Of[string](),
	"int":      typedesc.Of[int](),
	"int8":     typedesc.Of[int8](),
	"int16":    typedesc.Of[int16](),
	"int32":    typedesc.Of[int32](),
	"int64":    typedesc.Of[int64](),
	"uint":     typedesc.Of[uint](),
	"uint8":    typedesc.Of[uint8](),
	"uint16":   typedesc.Of[uint16](),
	"uint32":   typedesc.Of[uint32](),
	"uint64":   typedesc.Of[uint64](),
	"float32":  typedesc.Of[float32](),
	"float64":  typedesc.Of[float64](),
	"byte":     typedesc.Of[byte](),
	"rune":     typedesc.Of[rune](),
	"time":     typedesc.Of[time.Time](),
	"duration": typedesc.Of[time.Duration](),
}

// ParseType parses a type expression into a descriptor. The records map
// resolves bare names to previously declared record descriptors.
//
// Container element types must be reflect-backed (builtin or container
// types); unions, literals, and records cannot nest inside containers
// because containers are ordinary Go types at runtime.
func ParseType(expr string, records map[string]*typedesc.Type) (*typedesc.Type, error) {
	p := &typeParser{src: expr, records: records}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: trailing input in %q", ErrBadTypeExpr, expr)
	}
	return t, nil
}

type typeParser struct {
	src     string
	pos     int
	records map[string]*typedesc.Type
}

func (p *typeParser) parseType() (*typedesc.Type, error) {
	p.skipSpaces()

	switch {
	case p.eat("[]"):
		elem, err := p.parseReflectType()
		if err != nil {
			return nil, err
		}
		return typedesc.Go(reflect.SliceOf(elem)), nil

	case p.peekByte('['):
		return p.parseArray()

	case p.eat("map["):
		key, err := p.parseReflectType()
		if err != nil {
			return nil, err
		}
		if !p.eat("]") {
			return nil, fmt.Errorf("%w: missing ']' in %q", ErrBadTypeExpr, p.src)
		}
		value, err := p.parseReflectType()
		if err != nil {
			return nil, err
		}
		return typedesc.Go(reflect.MapOf(key, value)), nil

	case p.eat("set["):
		elem, err := p.parseReflectType()
		if err != nil {
			return nil, err
		}
		if !p.eat("]") {
			return nil, fmt.Errorf("%w: missing ']' in %q", ErrBadTypeExpr, p.src)
		}
		return typedesc.Go(reflect.MapOf(elem, reflect.TypeOf(struct{}{}))), nil

	case p.eat("union("):
		return p.parseUnion()

	case p.eat("literal("):
		return p.parseLiteral()
	}

	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrBadTypeExpr, p.src)
	}
	if t, ok := builtinTypes[name]; ok {
		return t, nil
	}
	if t, ok := p.records[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func (p *typeParser) parseArray() (*typedesc.Type, error) {
	p.pos++ // consume '['
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos || !p.eat("]") {
		return nil, fmt.Errorf("%w: bad array length in %q", ErrBadTypeExpr, p.src)
	}

	n, err := strconv.Atoi(p.src[start : p.pos-1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad array length in %q", ErrBadTypeExpr, p.src)
	}
	elem, err := p.parseReflectType()
	if err != nil {
		return nil, err
	}
	return typedesc.Go(reflect.ArrayOf(n, elem)), nil
}

func (p *typeParser) parseUnion() (*typedesc.Type, error) {
	var members []*typedesc.Type
	for {
		m, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, m)

		p.skipSpaces()
		if p.eat("|") {
			continue
		}
		if p.eat(")") {
			return typedesc.Union(members...), nil
		}
		return nil, fmt.Errorf("%w: expected '|' or ')' in %q", ErrBadTypeExpr, p.src)
	}
}

func (p *typeParser) parseLiteral() (*typedesc.Type, error) {
	var values []any
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		p.skipSpaces()
		if p.eat(",") {
			continue
		}
		if p.eat(")") {
			return typedesc.Literal(values...), nil
		}
		return nil, fmt.Errorf("%w: expected ',' or ')' in %q", ErrBadTypeExpr, p.src)
	}
}

func (p *typeParser) parseValue() (any, error) {
	p.skipSpaces()

	if p.peekByte('"') {
		end := strings.IndexByte(p.src[p.pos+1:], '"')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated string in %q", ErrBadLiteral, p.src)
		}
		quoted := p.src[p.pos : p.pos+end+2]
		p.pos += end + 2
		return strconv.Unquote(quoted)
	}

	word := p.valueWord()
	switch {
	case word == "":
		return nil, fmt.Errorf("%w: empty value in %q", ErrBadLiteral, p.src)
	case word == "true":
		return true, nil
	case word == "false":
		return false, nil
	}

	if n, err := strconv.Atoi(word); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f, nil
	}
	// bare words are string values
	return word, nil
}

// parseReflectType parses a nested type that must be an ordinary Go type at
// runtime.
func (p *typeParser) parseReflectType() (reflect.Type, error) {
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	switch t.Kind() {
	case typedesc.KindGo:
		return t.GoType(), nil
	case typedesc.KindAny:
		return reflect.TypeOf((*any)(nil)).Elem(), nil
	}
	return nil, fmt.Errorf("%w: %s cannot nest inside a container type", ErrBadTypeExpr, t)
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) eat(prefix string) bool {
	p.skipSpaces()
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) peekByte(b byte) bool {
	p.skipSpaces()
	return p.pos < len(p.src) && p.src[p.pos] == b
}

func (p *typeParser) ident() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) valueWord() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != ')' && p.src[p.pos] != ' ' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
