package syntax

import (
	"fmt"

	"wisp/logging"
)

// Parser builds the AST of one source unit from the scanner's token stream.
// The grammar is parsed by recursive descent:
//
//	module := form*
//	form   := list | vector | atom
//	list   := '(' form* ')'
//	vector := '[' form* ']'
//	atom   := operator | NUMLIT | SYMBOL (':' type-symbol)?
//
// The parser checks only lexical well-formedness of forms; the shape of
// declarations (`defn`, parameter vectors, etc.) is validated by the walker.
type Parser struct {
	sc *Scanner

	lookahead *Token
}

// NewParser creates a parser reading from the given scanner
func NewParser(sc *Scanner) *Parser {
	return &Parser{sc: sc}
}

// ParseModule parses all the top-level forms of a source unit
func (p *Parser) ParseModule() (*ASTModule, error) {
	mod := &ASTModule{}

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		if tok == nil {
			return mod, nil
		}

		form, err := p.parseForm(tok)
		if err != nil {
			return nil, err
		}

		mod.Forms = append(mod.Forms, form)
	}
}

// parseForm parses a single form starting at the given token
func (p *Parser) parseForm(tok *Token) (ASTNode, error) {
	switch tok.Kind {
	case LPAREN:
		return p.parseSeq(tok, RPAREN)
	case LBRACKET:
		return p.parseSeq(tok, RBRACKET)
	case PLUS, MINUS, STAR, FSLASH:
		return &ASTOperator{OpKind: tok.Kind, Pos: TextPositionOfToken(tok)}, nil
	case NUMLIT:
		return &ASTNumberLiteral{Value: tok.Value, Pos: TextPositionOfToken(tok)}, nil
	case SYMBOL:
		return p.parseSymbol(tok)
	default:
		return nil, p.errorOnToken(tok, "unexpected %s", tokenKindStrings[tok.Kind])
	}
}

// parseSeq parses the elements of a list or vector up to the given closing
// delimiter
func (p *Parser) parseSeq(open *Token, closer int) (ASTNode, error) {
	var elems []ASTNode

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		if tok == nil {
			return nil, p.errorOnToken(open, "unclosed %s", tokenKindStrings[open.Kind])
		}

		if tok.Kind == closer {
			span := &logging.TextPosition{
				StartLn:  open.Line,
				StartCol: open.Col,
				EndLn:    tok.Line,
				EndCol:   tok.Col + 1,
			}

			if closer == RPAREN {
				return &ASTList{Elems: elems, Span: span}, nil
			}

			return &ASTVector{Elems: elems, Span: span}, nil
		}

		// a closer of the wrong kind is always an error (`(a]`)
		if tok.Kind == RPAREN || tok.Kind == RBRACKET {
			return nil, p.errorOnToken(tok, "mismatched %s", tokenKindStrings[tok.Kind])
		}

		elem, err := p.parseForm(tok)
		if err != nil {
			return nil, err
		}

		elems = append(elems, elem)
	}
}

// parseSymbol parses a symbol together with its optional `: type` annotation
func (p *Parser) parseSymbol(tok *Token) (ASTNode, error) {
	sym := &ASTSymbol{Name: tok.Value, Pos: TextPositionOfToken(tok)}

	ahead, err := p.next()
	if err != nil {
		return nil, err
	}

	if ahead == nil || ahead.Kind != COLON {
		p.lookahead = ahead
		return sym, nil
	}

	// a colon must be followed by a type symbol
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}

	if typeTok == nil || typeTok.Kind != SYMBOL {
		return nil, p.errorOnToken(ahead, "expected a type name after `:`")
	}

	annot, ok := annotationNames[typeTok.Value]
	if !ok {
		return nil, p.errorOnToken(typeTok, "unknown type annotation: `%s`", typeTok.Value)
	}

	sym.Annotated = true
	sym.Annot = annot
	sym.Pos = &logging.TextPosition{
		StartLn:  sym.Pos.StartLn,
		StartCol: sym.Pos.StartCol,
		EndLn:    typeTok.Line,
		EndCol:   typeTok.Col + 1,
	}

	return sym, nil
}

// -----------------------------------------------------------------------------

// next yields the next token, honoring any lookahead stored by parseSymbol
func (p *Parser) next() (*Token, error) {
	if p.lookahead != nil {
		tok := p.lookahead
		p.lookahead = nil
		return tok, nil
	}

	return p.sc.ReadToken()
}

// errorOnToken produces a positioned syntax error on the given token
func (p *Parser) errorOnToken(tok *Token, format string, args ...interface{}) error {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Kind:    logging.LMKSyntax,
		Pos:     TextPositionOfToken(tok),
	}
}
