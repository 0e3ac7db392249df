package ruby

import (
	"fmt"
	"os"
)

// Parser builds a syntax tree from the token stream. The grammar is the
// subset of Ruby the linter understands: method definitions (instance and
// singleton), statement sequences, begin/rescue/ensure blocks, if/unless in
// statement and modifier form, returns, assignments, send chains and the
// basic literals.
type Parser struct {
	lx  *Lexer
	tok Token
}

// ParseFile parses the named file. When src is non-nil it is used as the
// file's content instead of reading from disk.
func ParseFile(filename string, src []byte) (*File, error) {
	if src == nil {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("error reading source file: %w", err)
		}
		src = content
	}

	p := &Parser{lx: NewLexer(filename, src)}
	p.next()

	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	return &File{
		Filename: filename,
		Source:   src,
		Root:     root,
		Comments: p.lx.Comments(),
	}, nil
}

func (p *Parser) next() {
	p.tok = p.lx.Next()
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", p.tok.Pos, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	if p.tok.Type != typ {
		return p.tok, p.errorf("expected %s, found %s", typ, p.tok.Type)
	}
	tok := p.tok
	p.next()
	return tok, nil
}

func isTerminator(typ TokenType) bool {
	return typ == NEWLINE || typ == SEMICOLON || typ == EOF
}

func (p *Parser) skipTerminators() {
	for p.tok.Type == NEWLINE || p.tok.Type == SEMICOLON {
		p.next()
	}
}

func (p *Parser) parseProgram() (*Node, error) {
	start := p.tok.Pos
	stmts, err := p.parseStatements(EOF)
	if err != nil {
		return nil, err
	}
	root := &Node{Kind: Begin, Children: stmts, Pos: start, End: p.tok.Pos}
	if len(stmts) > 0 {
		root.Pos = stmts[0].Pos
		root.End = stmts[len(stmts)-1].End
	}
	return root, nil
}

// parseStatements consumes statements until one of the stop tokens (or EOF)
// is reached. The stop token is left in place for the caller.
func (p *Parser) parseStatements(stop ...TokenType) ([]*Node, error) {
	var stmts []*Node
	p.skipTerminators()
	for {
		if p.tok.Type == EOF || tokenIn(p.tok.Type, stop) {
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !isTerminator(p.tok.Type) && !tokenIn(p.tok.Type, stop) {
			return nil, p.errorf("expected newline or ';', found %s", p.tok.Type)
		}
		p.skipTerminators()
	}
}

func tokenIn(typ TokenType, set []TokenType) bool {
	for _, t := range set {
		if t == typ {
			return true
		}
	}
	return false
}

// wrapBody mirrors the usual tree shape for bodies: no statement yields nil,
// a single statement stands alone, several are grouped in a Begin node.
func wrapBody(stmts []*Node) *Node {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	default:
		return &Node{
			Kind:     Begin,
			Children: stmts,
			Pos:      stmts[0].Pos,
			End:      stmts[len(stmts)-1].End,
		}
	}
}

func emptyBody(at Position) *Node {
	return &Node{Kind: Begin, Pos: at, End: at}
}

func (p *Parser) parseStatement() (*Node, error) {
	switch p.tok.Type {
	case KWDEF:
		return p.parseMethodDef()
	case KWRETURN:
		ret, err := p.parseReturn()
		if err != nil {
			return nil, err
		}
		return p.parseModifier(ret)
	case KWIF, KWUNLESS:
		return p.parseIfStatement()
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return p.parseModifier(expr)
	}
}

// parseModifier wraps a statement in an If node when it is followed by a
// modifier `if`/`unless` clause, as in `return if x`.
func (p *Parser) parseModifier(stmt *Node) (*Node, error) {
	if p.tok.Type != KWIF && p.tok.Type != KWUNLESS {
		return stmt, nil
	}
	kw := p.tok
	p.next()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Node{
		Kind:     If,
		Name:     kw.Literal,
		Children: []*Node{cond, stmt},
		Pos:      stmt.Pos,
		End:      cond.End,
	}, nil
}

func (p *Parser) parseReturn() (*Node, error) {
	tok := p.tok
	p.next()

	node := &Node{Kind: Return, Pos: tok.Pos, End: tok.End}
	if isTerminator(p.tok.Type) || startsClause(p.tok.Type) {
		return node, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.Children = []*Node{value}
	node.End = value.End
	return node, nil
}

// startsClause reports tokens that end the expression position of a bare
// return: block tails and modifier keywords.
func startsClause(typ TokenType) bool {
	switch typ {
	case KWEND, KWIF, KWUNLESS, KWRESCUE, KWENSURE, KWELSE:
		return true
	}
	return false
}

func (p *Parser) parseMethodDef() (*Node, error) {
	defTok := p.tok
	p.next()

	kind := MethodDef
	if p.tok.Type == KWSELF {
		p.next()
		if _, err := p.expect(DOT); err != nil {
			return nil, err
		}
		kind = SingletonDef
	}

	if p.tok.Type != IDENT && p.tok.Type != CONST {
		return nil, p.errorf("expected method name, found %s", p.tok.Type)
	}
	name := p.tok.Literal
	p.next()

	if p.tok.Type == LPAREN {
		if err := p.skipParams(); err != nil {
			return nil, err
		}
	}

	body, err := p.parseBodyWithClauses()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(KWEND)
	if err != nil {
		return nil, err
	}

	node := &Node{Kind: kind, Name: name, Pos: defTok.Pos, End: endTok.End}
	if body != nil {
		node.Children = []*Node{body}
	}
	return node, nil
}

func (p *Parser) skipParams() error {
	p.next() // consume '('
	for p.tok.Type != RPAREN {
		if p.tok.Type != IDENT {
			return p.errorf("expected parameter name, found %s", p.tok.Type)
		}
		p.next()
		if p.tok.Type == COMMA {
			p.next()
		}
	}
	p.next() // consume ')'
	return nil
}

// parseBodyWithClauses parses a statement sequence optionally followed by
// rescue branches and an ensure clause, producing the conventional nesting:
// the ensure wraps the rescue, the rescue wraps the protected body. The
// terminating `end` is left for the caller.
func (p *Parser) parseBodyWithClauses() (*Node, error) {
	bodyStart := p.tok.Pos
	stmts, err := p.parseStatements(KWRESCUE, KWENSURE, KWELSE, KWEND)
	if err != nil {
		return nil, err
	}
	node := wrapBody(stmts)

	if p.tok.Type == KWELSE {
		return nil, p.errorf("else without rescue is not supported")
	}

	if p.tok.Type == KWRESCUE {
		protected := node
		if protected == nil {
			protected = emptyBody(bodyStart)
		}
		rescueNode := &Node{Kind: Rescue, Pos: protected.Pos, Children: []*Node{protected}}
		for p.tok.Type == KWRESCUE {
			branch, err := p.parseRescueBranch()
			if err != nil {
				return nil, err
			}
			rescueNode.Children = append(rescueNode.Children, branch)
		}
		rescueNode.End = rescueNode.LastChild().End
		node = rescueNode
	}

	if p.tok.Type == KWENSURE {
		ensureTok := p.tok
		p.next()
		cleanupStmts, err := p.parseStatements(KWEND)
		if err != nil {
			return nil, err
		}
		protected := node
		if protected == nil {
			protected = emptyBody(bodyStart)
		}
		cleanup := wrapBody(cleanupStmts)
		if cleanup == nil {
			cleanup = emptyBody(ensureTok.End)
		}
		node = &Node{
			Kind:     Ensure,
			Children: []*Node{protected, cleanup},
			Pos:      protected.Pos,
			End:      cleanup.End,
		}
	}

	return node, nil
}

func (p *Parser) parseRescueBranch() (*Node, error) {
	rescueTok := p.tok
	p.next()

	exStart := p.tok.Pos
	var exceptions []*Node
	for p.tok.Type == CONST {
		exceptions = append(exceptions, &Node{
			Kind: Ident,
			Name: p.tok.Literal,
			Pos:  p.tok.Pos,
			End:  p.tok.End,
		})
		p.next()
		if p.tok.Type == COMMA {
			p.next()
			continue
		}
		break
	}
	exList := &Node{Kind: Begin, Children: exceptions, Pos: exStart, End: exStart}
	if len(exceptions) > 0 {
		exList.Pos = exceptions[0].Pos
		exList.End = exceptions[len(exceptions)-1].End
	}

	var varName string
	if p.tok.Type == ARROW {
		p.next()
		tok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		varName = tok.Literal
	}

	if p.tok.Type == KWTHEN {
		p.next()
	}

	stmts, err := p.parseStatements(KWRESCUE, KWENSURE, KWELSE, KWEND)
	if err != nil {
		return nil, err
	}
	body := wrapBody(stmts)
	if body == nil {
		body = emptyBody(rescueTok.End)
	}

	return &Node{
		Kind:     RescueBranch,
		Name:     varName,
		Children: []*Node{exList, body},
		Pos:      rescueTok.Pos,
		End:      body.End,
	}, nil
}

func (p *Parser) parseIfStatement() (*Node, error) {
	kw := p.tok
	p.next()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.tok.Type == KWTHEN {
		p.next()
	}

	thenStmts, err := p.parseStatements(KWELSE, KWEND)
	if err != nil {
		return nil, err
	}
	thenBody := wrapBody(thenStmts)
	if thenBody == nil {
		thenBody = emptyBody(p.tok.Pos)
	}

	children := []*Node{cond, thenBody}
	if p.tok.Type == KWELSE {
		p.next()
		elseStmts, err := p.parseStatements(KWEND)
		if err != nil {
			return nil, err
		}
		elseBody := wrapBody(elseStmts)
		if elseBody == nil {
			elseBody = emptyBody(p.tok.Pos)
		}
		children = append(children, elseBody)
	}

	endTok, err := p.expect(KWEND)
	if err != nil {
		return nil, err
	}

	return &Node{
		Kind:     If,
		Name:     kw.Literal,
		Children: children,
		Pos:      kw.Pos,
		End:      endTok.End,
	}, nil
}

func (p *Parser) parseBeginBlock() (*Node, error) {
	beginTok := p.tok
	p.next()

	body, err := p.parseBodyWithClauses()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(KWEND)
	if err != nil {
		return nil, err
	}

	switch {
	case body == nil:
		return &Node{Kind: Begin, Pos: beginTok.Pos, End: endTok.End}, nil
	case body.Kind == Rescue || body.Kind == Ensure || body.Kind == Begin:
		body.Pos = beginTok.Pos
		body.End = endTok.End
		return body, nil
	default:
		// single statement: keep the Begin wrapper so the block's span
		// covers the keywords
		return &Node{Kind: Begin, Children: []*Node{body}, Pos: beginTok.Pos, End: endTok.End}, nil
	}
}

func (p *Parser) parseExpression() (*Node, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == DOT {
		p.next()
		if p.tok.Type != IDENT && p.tok.Type != CONST {
			return nil, p.errorf("expected method name after '.', found %s", p.tok.Type)
		}
		name := p.tok
		p.next()
		send := &Node{Kind: Send, Name: name.Literal, Recv: prim, Pos: prim.Pos, End: name.End}
		if p.tok.Type == LPAREN {
			args, end, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			send.Children = args
			send.End = end
		}
		prim = send
	}

	if prim.Kind == Ident && p.tok.Type == ASSIGN {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Node{
			Kind:     Assign,
			Name:     prim.Name,
			Children: []*Node{value},
			Pos:      prim.Pos,
			End:      value.End,
		}, nil
	}

	return prim, nil
}

func (p *Parser) parsePrimary() (*Node, error) {
	tok := p.tok
	switch tok.Type {
	case KWNIL:
		p.next()
		return &Node{Kind: NilLit, Pos: tok.Pos, End: tok.End}, nil
	case KWTRUE:
		p.next()
		return &Node{Kind: TrueLit, Pos: tok.Pos, End: tok.End}, nil
	case KWFALSE:
		p.next()
		return &Node{Kind: FalseLit, Pos: tok.Pos, End: tok.End}, nil
	case INT:
		p.next()
		return &Node{Kind: IntLit, Name: tok.Literal, Pos: tok.Pos, End: tok.End}, nil
	case STRING:
		p.next()
		return &Node{Kind: StrLit, Name: tok.Literal, Pos: tok.Pos, End: tok.End}, nil
	case SYMBOL:
		p.next()
		return &Node{Kind: SymLit, Name: tok.Literal, Pos: tok.Pos, End: tok.End}, nil
	case KWSELF:
		p.next()
		return &Node{Kind: Ident, Name: "self", Pos: tok.Pos, End: tok.End}, nil
	case IDENT, CONST:
		p.next()
		if p.tok.Type == LPAREN {
			args, end, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &Node{Kind: Send, Name: tok.Literal, Children: args, Pos: tok.Pos, End: end}, nil
		}
		return &Node{Kind: Ident, Name: tok.Literal, Pos: tok.Pos, End: tok.End}, nil
	case KWBEGIN:
		return p.parseBeginBlock()
	case LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf("unexpected %s", tok.Type)
	}
}

func (p *Parser) parseArgs() ([]*Node, Position, error) {
	p.next() // consume '('
	var args []*Node
	for p.tok.Type != RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, Position{}, err
		}
		args = append(args, arg)
		if p.tok.Type == COMMA {
			p.next()
		}
	}
	end := p.tok.End
	p.next() // consume ')'
	return args, end, nil
}
