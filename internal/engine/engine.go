package engine

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
}

// NodeKind classifies document tree nodes.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeObject
	NodeArray
	NodeString
	NodeNumber
	NodeBool
)

// Node is an order-preserving document value. Numbers keep their literal
// text in Text.
type Node struct {
	Kind   NodeKind
	Text   string
	Bool   bool
	Fields []Field // NodeObject, in document order
	Elems  []*Node // NodeArray
}

// Field is one object member.
type Field struct {
	Key   string
	Value *Node
}

// DuplicatePolicy controls duplicate object keys while building a tree.
type DuplicatePolicy int

const (
	DupKeep DuplicatePolicy = iota // keep every occurrence in order
	DupError
)

// DuplicateKeyError reports a repeated object key under DupError.
type DuplicateKeyError struct {
	Path string // JSON Pointer of the repeated member
	Key  string
}

func (e *DuplicateKeyError) Error() string { return "duplicate key " + strconv.Quote(e.Key) + " at " + e.Path }

// ErrTrailingData reports input left over after the root value.
var ErrTrailingData = errors.New("engine: trailing data after root value")

// BuildTree reads exactly one value from src and returns it as a tree.
func BuildTree(src TokenSource, dup DuplicatePolicy) (*Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	b := builder{src: src, dup: dup}
	n, err := b.value(tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return n, nil
}

type builder struct {
	src TokenSource
	dup DuplicatePolicy
}

func (b *builder) value(tok Token, path string) (*Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return b.object(path)
	case KindBeginArray:
		return b.array(path)
	case KindString:
		return &Node{Kind: NodeString, Text: tok.String}, nil
	case KindNumber:
		return &Node{Kind: NodeNumber, Text: tok.Number}, nil
	case KindBool:
		return &Node{Kind: NodeBool, Bool: tok.Bool}, nil
	case KindNull:
		return &Node{Kind: NodeNull}, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (b *builder) next() (Token, error) {
	tok, err := b.src.NextToken()
	if err == io.EOF {
		return tok, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (b *builder) object(path string) (*Node, error) {
	n := &Node{Kind: NodeObject}
	var seen map[string]struct{}
	if b.dup == DupError {
		seen = make(map[string]struct{})
	}
	for {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		p := path + "/" + EscapePointer(tok.String)
		if seen != nil {
			if _, ok := seen[tok.String]; ok {
				return nil, &DuplicateKeyError{Path: p, Key: tok.String}
			}
			seen[tok.String] = struct{}{}
		}
		vt, err := b.next()
		if err != nil {
			return nil, err
		}
		v, err := b.value(vt, p)
		if err != nil {
			return nil, err
		}
		n.Fields = append(n.Fields, Field{Key: tok.String, Value: v})
	}
}

func (b *builder) array(path string) (*Node, error) {
	n := &Node{Kind: NodeArray}
	for {
		tok, err := b.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return n, nil
		}
		v, err := b.value(tok, path+"/"+strconv.Itoa(len(n.Elems)))
		if err != nil {
			return nil, err
		}
		n.Elems = append(n.Elems, v)
	}
}

// EscapePointer escapes '~' -> '~0', '/' -> '~1' per RFC6901.
func EscapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
