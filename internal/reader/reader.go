// Package reader assembles lexer.Tokens into runtime.Value trees. Since
// Scheme is homoiconic, there is no separate AST: the tree the reader
// builds IS the expression the evaluator runs (spec.md overview).
package reader

import (
	"github.com/cwbudde/go-scheme/internal/interp/runtime"
	"github.com/cwbudde/go-scheme/internal/lexer"
)

// Reader pulls tokens from a lexer.Lexer one at a time and assembles them
// into values.
type Reader struct {
	lex *lexer.Lexer
}

// New wraps lex in a Reader.
func New(lex *lexer.Lexer) *Reader {
	return &Reader{lex: lex}
}

func (r *Reader) next() lexer.Token {
	return r.lex.NextToken()
}

// ReadExpr reads one top-level expression. At clean end of input (no
// tokens at all before EOF) it returns runtime.EOF with a nil error,
// matching the `read` intrinsic's contract (spec.md §4.G). A malformed
// form (unmatched `)`) returns a *ParseError.
func (r *Reader) ReadExpr() (runtime.Value, error) {
	tok := r.next()
	if tok.Type == lexer.EOF {
		return runtime.EOF, nil
	}
	return r.readFrom(tok)
}

func (r *Reader) readFrom(tok lexer.Token) (runtime.Value, error) {
	switch tok.Type {
	case lexer.EOF:
		return nil, &ParseError{Pos: tok.Pos, Message: "unexpected end of input"}

	case lexer.ILLEGAL:
		return nil, &ParseError{Pos: tok.Pos, Message: "malformed token: " + tok.Literal}

	case lexer.LPAREN:
		return r.readList(tok)

	case lexer.RPAREN:
		return nil, &ParseError{Pos: tok.Pos, Message: "unmatched )"}

	case lexer.DOT:
		return nil, &ParseError{Pos: tok.Pos, Message: "unexpected ."}

	case lexer.QUOTE:
		inner, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		if inner == runtime.EOF {
			return nil, &ParseError{Pos: tok.Pos, Message: "unexpected end of input after '"}
		}
		return runtime.Cons(runtime.SymQuote, runtime.Cons(inner, runtime.NilValue)), nil

	case lexer.STRING:
		return runtime.String(tok.Literal), nil

	case lexer.ATOM:
		return atomValue(tok.Literal), nil

	default:
		return nil, &ParseError{Pos: tok.Pos, Message: "malformed token: " + tok.Literal}
	}
}

// readList reads elements until a matching RPAREN, supporting the dotted-pair
// form `(a b . c)`. open is the already-consumed LPAREN, kept for its
// position so an unterminated list reports where it started.
func (r *Reader) readList(open lexer.Token) (runtime.Value, error) {
	var elems []runtime.Value
	var tail runtime.Value = runtime.NilValue

	for {
		tok := r.next()
		switch tok.Type {
		case lexer.EOF:
			return nil, &ParseError{Pos: open.Pos, Message: "unterminated list"}

		case lexer.RPAREN:
			result := tail
			for i := len(elems) - 1; i >= 0; i-- {
				result = runtime.Cons(elems[i], result)
			}
			return result, nil

		case lexer.DOT:
			t, err := r.ReadExpr()
			if err != nil {
				return nil, err
			}
			if t == runtime.EOF {
				return nil, &ParseError{Pos: tok.Pos, Message: "expected expression after ."}
			}
			tail = t
			closer := r.next()
			if closer.Type != lexer.RPAREN {
				return nil, &ParseError{Pos: closer.Pos, Message: "expected ) after dotted-pair tail"}
			}
			result := tail
			for i := len(elems) - 1; i >= 0; i-- {
				result = runtime.Cons(elems[i], result)
			}
			return result, nil

		default:
			v, err := r.readFrom(tok)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
	}
}

// atomValue classifies an ATOM token's literal as a boolean, a number, or
// (the fallback) an interned symbol — spec.md §3's value model.
func atomValue(literal string) runtime.Value {
	switch literal {
	case "#t":
		return runtime.True
	case "#f":
		return runtime.False
	}
	if n, ok := runtime.ParseNumber(literal); ok {
		return n
	}
	return runtime.Intern(literal)
}
