package internal

type callStack struct {
	function  string
	loopCount int
}

type functionKind int

const (
	fnKindFunction functionKind = iota
	fnKindMethod
)

var functionErrors = map[functionKind]struct {
	name, paren, body error
}{
	fnKindFunction: {errExpectFunctionName, errExpectParenFunction, errExpectFunctionBody},
	fnKindMethod:   {errExpectMethodName, errExpectParenMethod, errExpectMethodBody},
}

// parser stores parser data
type parser struct {
	current int

	cls []*callStack

	state *interpreterState
}

const maxFunctionParams = 255

func (p *parser) getParsingContext() *callStack {
	return p.cls[len(p.cls)-1]
}

func (p *parser) enterFunction(name string) {
	p.cls = append(p.cls, &callStack{
		function:  name,
		loopCount: 0,
	})
}

func (p *parser) leaveFunction() {
	p.cls = p.cls[:len(p.cls)-1]
}

func (p *parser) enterLoop() {
	p.getParsingContext().loopCount++
}

func (p *parser) leaveLoop() {
	p.getParsingContext().loopCount--
}

func (p *parser) insideLoop() bool {
	return p.getParsingContext().loopCount != 0
}

func (p *parser) parse() {
	p.cls = make([]*callStack, 0)
	p.enterFunction("")
	defer p.leaveFunction()
	for !p.isAtEnd() {
		// A declaration that failed to parse comes back as nil and is
		// dropped; the state already holds its error.
		if st := p.declaration(); st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) declaration() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syntaxPanic); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.function(fnKindFunction)
	}
	if p.match(tkVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		superclass = &variableExpr{
			name: p.consume(tkIdentifier, errExpectSuperclassName),
		}
	}

	p.consume(tkLeftBrace, errExpectClassBody)

	var methods []*functionStmt
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function(fnKindMethod))
	}

	p.consume(tkRightBrace, errUnclosedClassBody)

	return &classStmt{
		name:       name,
		superclass: superclass,
		methods:    methods,
	}
}

func (p *parser) function(kind functionKind) *functionStmt {
	errs := functionErrors[kind]
	name := p.consume(tkIdentifier, errs.name)

	p.enterFunction(name.lexeme)
	defer p.leaveFunction()

	p.consume(tkLeftParen, errs.paren)

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.errorAt(p.peek(), errMaxParameters)
			}
			params = append(params, p.consume(tkIdentifier, errExpectParamName))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errUnclosedParams)

	p.consume(tkLeftBrace, errs.body)

	return &functionStmt{
		name:   name,
		params: params,
		body:   p.block(),
	}
}

func (p *parser) varDeclaration() stmt {
	name := p.consume(tkIdentifier, errExpectVarName)

	var init expr
	if p.match(tkEqual) {
		init = p.expression()
	}

	p.consume(tkSemicolon, errExpectSemicolonVar)

	return &varStmt{
		name:        name,
		initializer: init,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkContinue) {
		return p.cont()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars into a while loop wrapped in a block holding the
// initializer. The increment stays on the loop so continue still runs it.
func (p *parser) forLoop() stmt {
	p.consume(tkLeftParen, errExpectParenFor)

	var init stmt
	if p.match(tkSemicolon) {
		init = nil
	} else if p.match(tkVar) {
		init = p.varDeclaration()
	} else {
		init = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectSemicolonCond)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedFor)

	p.enterLoop()
	defer p.leaveLoop()
	body := p.statement()

	if cond == nil {
		cond = &literalExpr{value: loxBool(true)}
	}

	var loop stmt = &whileStmt{
		condition: cond,
		body:      body,
		increment: inc,
	}

	if init != nil {
		loop = &blockStmt{stmts: []stmt{init, loop}}
	}

	return loop
}

func (p *parser) ifStmt() stmt {
	p.consume(tkLeftParen, errExpectParenIf)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedIf)

	st := &ifStmt{
		condition:  cond,
		thenBranch: p.statement(),
	}
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}
	return st
}

func (p *parser) printStmt() stmt {
	value := p.expression()
	p.consume(tkSemicolon, errExpectSemicolonValue)
	return &printStmt{expression: value}
}

func (p *parser) ret() stmt {
	keyword := p.previous()
	var value expr
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectSemicolonReturn)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.state.errorAt(keyword, errBreakOutsideLoop)
	}
	p.consume(tkSemicolon, errExpectSemicolonBreak)
	return &breakStmt{keyword: keyword}
}

func (p *parser) cont() stmt {
	keyword := p.previous()
	if !p.insideLoop() {
		p.state.errorAt(keyword, errContinueOutsideLoop)
	}
	p.consume(tkSemicolon, errExpectSemicolonContinue)
	return &continueStmt{keyword: keyword}
}

func (p *parser) while() stmt {
	p.consume(tkLeftParen, errExpectParenWhile)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedWhile)

	p.enterLoop()
	defer p.leaveLoop()

	return &whileStmt{
		condition: cond,
		body:      p.statement(),
	}
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightBrace) && !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightBrace, errUnclosedBlock)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	expr := p.expression()
	p.consume(tkSemicolon, errExpectSemicolonExpr)
	return &expressionStmt{expression: expr}
}

func (p *parser) expression() expr {
	return p.comma()
}

func (p *parser) comma() expr {
	expr := p.ternary()
	for p.match(tkComma) {
		operator := p.previous()
		right := p.ternary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) ternary() expr {
	expr := p.assignment()
	if p.match(tkQuestion) {
		question := p.previous()
		ifTrue := p.ternary()
		p.consume(tkColon, errExpectColon)
		ifFalse := p.ternary()
		return &ternaryExpr{
			test:     expr,
			question: question,
			ifTrue:   ifTrue,
			ifFalse:  ifFalse,
		}
	}
	return expr
}

func (p *parser) assignment() expr {
	expr := p.or()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *variableExpr:
			return &assignExpr{
				name:  target.name,
				value: value,
			}
		case *getExpr:
			return &setExpr{
				object: target.object,
				name:   target.name,
				value:  value,
			}
		}

		// Reported but not thrown: the parser is not confused.
		p.state.errorAt(equal, errInvalidAssignTarget)
	}
	return expr
}

func (p *parser) or() expr {
	expr := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) and() expr {
	expr := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		expr = &logicalExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) equality() expr {
	expr := p.comparison()
	for p.match(tkEqualEqual, tkBangEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) comparison() expr {
	expr := p.addition()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.addition()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) addition() expr {
	expr := p.multiplication()
	for p.match(tkPlus, tkMinus) {
		operator := p.previous()
		right := p.multiplication()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) multiplication() expr {
	expr := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous()
		right := p.unary()
		expr = &binaryExpr{
			left:     expr,
			operator: operator,
			right:    right,
		}
	}
	return expr
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	expr := p.primary()
	for {
		if p.match(tkLeftParen) {
			expr = p.finishCall(expr)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectProp)
			expr = &getExpr{
				object: expr,
				name:   name,
			}
		} else {
			break
		}
	}
	return expr
}

func (p *parser) finishCall(callee expr) expr {
	arguments := make([]expr, 0)
	if !p.check(tkRightParen) {
		for {
			if len(arguments) >= maxFunctionParams {
				p.state.errorAt(p.peek(), errMaxArguments)
			}
			arguments = append(arguments, p.ternary())
			if !p.match(tkComma) {
				break
			}
		}
	}
	paren := p.consume(tkRightParen, errUnclosedArguments)
	return &callExpr{
		callee:    callee,
		paren:     paren,
		arguments: arguments,
	}
}

func (p *parser) primary() expr {
	if p.match(tkFalse) {
		return &literalExpr{value: loxBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: loxBool(true)}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkThis) {
		return &thisExpr{keyword: p.previous()}
	}
	if p.match(tkSuper) {
		keyword := p.previous()
		p.consume(tkDot, errExpectSuperDot)
		return &superExpr{
			keyword: keyword,
			method:  p.consume(tkIdentifier, errExpectSuperMethod),
		}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		expr := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: expr}
	}

	p.state.fatalError(errExpectExpr, p.peek())
	return nil
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}

	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, tk := range tokens {
		if p.check(tk) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

// synchronize discards tokens until it finds a statement boundary.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}

		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn:
			return
		}

		p.advance()
	}
}
