// Package compiler turns Oliver's flat token sequence into a single
// postfix-form expression the evaluator can execute directly.
// Collections accumulate terms in source order as they open, and
// re-shape (if/elif/else conditionals, function literals,
// infix-to-postfix rewriting) runs on that source-ordered
// list the moment a collection closes, right before the collection's
// elements are stored in evaluation order (logical lead = last
// element, per internal/value's seq contract).
//
// Rather than deferring a single whole-tree reversal to the very end,
// this compiler reverses each collection's terms as it closes. The two
// are equivalent for a properly nested token stream, and closing each
// collection immediately keeps every already-built sub-expression
// self-consistently oriented while outer collections are still being
// assembled.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/nrperez/oliver/internal/lexer"
	"github.com/nrperez/oliver/internal/token"
	"github.com/nrperez/oliver/internal/value"
)

// frame is a currently-open collection: the terms compiled so far, in
// the order their tokens were read.
type frame struct {
	kind  lexer.Kind
	terms []value.Value
}

// Compile consumes a token sequence (as produced by lexer.Tokenize,
// already wrapped in an implicit top-level '(' ... ')') and returns the
// program as a single top-level expression.
func Compile(tokens []lexer.Token) (value.Expression, error) {
	var stack []*frame
	var result value.Expression
	closed := false

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.LParen, lexer.LBracket, lexer.LBrace:
			f := &frame{kind: tok.Kind}
			if tok.Kind == lexer.LBrace {
				f.terms = append(f.terms, value.OpCall{Op: token.MAP_OP})
			}
			stack = append(stack, f)

		case lexer.RParen, lexer.RBracket, lexer.RBrace:
			if len(stack) == 0 {
				return value.Expression{}, fmt.Errorf("compiler: unmatched closing token at line %d", tok.Line)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			closedVal := closeFrame(top)

			if len(stack) == 0 {
				e, ok := closedVal.(value.Expression)
				if !ok {
					return value.Expression{}, fmt.Errorf("compiler: top-level program did not close as an expression")
				}
				result = e
				closed = true
				continue
			}
			parent := stack[len(stack)-1]
			parent.terms = append(parent.terms, closedVal)

		default:
			v, err := compileTerm(tok)
			if err != nil {
				return value.Expression{}, err
			}
			if len(stack) == 0 {
				return value.Expression{}, fmt.Errorf("compiler: term outside any group at line %d", tok.Line)
			}
			top := stack[len(stack)-1]
			top.terms = append(top.terms, v)
		}
	}

	if !closed {
		return value.Expression{}, fmt.Errorf("compiler: unterminated program")
	}
	return result, nil
}

// closeFrame re-shapes a frame's collected terms and materializes the
// value that replaces the whole collection in its parent.
func closeFrame(f *frame) value.Value {
	terms := foldOperators(foldFunctions(foldConditionals(f.terms)))

	switch f.kind {
	case lexer.LBrace:
		return buildObject(terms)
	case lexer.LBracket:
		return value.NewList(reverseValues(terms)...)
	default:
		return value.NewExpression(reverseValues(terms)...)
	}
}

func reverseValues(terms []value.Value) []value.Value {
	out := make([]value.Value, len(terms))
	for i, v := range terms {
		out[len(terms)-1-i] = v
	}
	return out
}

// compileTerm classifies a single non-grouping token into the value it
// contributes to the currently-open collection.
func compileTerm(tok lexer.Token) (value.Value, error) {
	switch tok.Kind {
	case lexer.Word:
		return classifyWord(tok.Text), nil
	case lexer.Neg:
		return value.OpCall{Op: token.NEG}, nil
	case lexer.Idnt:
		return value.OpCall{Op: token.IDNT}, nil
	case lexer.Arrow:
		return infixMarker{Op: token.InfixPushRight}, nil
	case lexer.Quote:
		return compileLiteral(tok), nil
	}
	return nil, fmt.Errorf("compiler: unexpected token kind %s at line %d", tok.Kind, tok.Line)
}

// compileLiteral turns a Quote token into the literal value its
// delimiter selects. Regex literals (delim '\') have no distinct
// runtime kind in the closed value set, so they compile to plain text
// carrying the pattern verbatim; nothing downstream inspects it as a
// pattern.
func compileLiteral(tok lexer.Token) value.Value {
	switch tok.Delim {
	case '\'':
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return value.ParseError("invalid number literal " + strconv.Quote(tok.Text))
		}
		return value.NewReal(n)
	case '`':
		return value.NewFormatValue(tok.Text)
	default: // '"' or '\\'
		return value.NewText(tok.Text)
	}
}

// classifyWord classifies a bare word in a fixed order: operator
// table, then infix symbol table, then boolean words, then the
// nothing-words, defaulting to a plain symbol.
func classifyWord(word string) value.Value {
	if op, ok := token.LookupOperator(word); ok {
		return value.OpCall{Op: op}
	}
	if iop, ok := token.LookupInfix(word); ok {
		return infixMarker{Op: iop}
	}
	switch word {
	case "true", "1":
		return value.True()
	case "false", "0":
		return value.False()
	case "undef", "undefined":
		return value.Undefined()
	case "nothing", "none":
		return value.Nothing{}
	}
	return value.Symbol{Name: word}
}

// buildObject materializes an object from a reshaped { ... } frame's
// terms: index 0 is the map_op marker pushed at open time, and the
// remainder is a flat (key, value, key, value, ...) run in source
// order. Duplicate keys keep the last-written value.
func buildObject(terms []value.Value) value.Value {
	obj := value.NewObject()
	entries := terms
	if len(entries) > 0 {
		entries = entries[1:]
	}
	for i := 0; i+1 < len(entries); i += 2 {
		obj = obj.Set(entries[i], entries[i+1]).(value.Object)
	}
	return obj
}
