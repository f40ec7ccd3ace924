package internal

import "fmt"

type functionType int

const (
	fnTypeNone functionType = iota
	fnTypeFunction
	fnTypeMethod
	fnTypeInitializer
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// scope maps a name to whether its initializer has finished.
type scope map[string]bool

// resolver walks the tree once before execution and records, for every
// local variable reference, how many environments lie between the
// reference and its binding. Globals are left out of locals.
type resolver struct {
	state  *interpreterState
	locals map[expr]int
	scopes []scope

	currentFunction functionType
	currentClass    classType
}

func newResolver(state *interpreterState, locals map[expr]int) *resolver {
	return &resolver{
		state:  state,
		locals: locals,
		scopes: make([]scope, 0),
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s stmt) {
	switch st := s.(type) {
	case *blockStmt:
		r.beginScope()
		r.resolve(st.stmts)
		r.endScope()
	case *varStmt:
		r.declare(st.name)
		if st.initializer != nil {
			r.resolveExpr(st.initializer)
		}
		r.define(st.name)
	case *functionStmt:
		r.declare(st.name)
		r.define(st.name)
		r.resolveFunction(st, fnTypeFunction)
	case *classStmt:
		r.resolveClass(st)
	case *expressionStmt:
		r.resolveExpr(st.expression)
	case *printStmt:
		r.resolveExpr(st.expression)
	case *ifStmt:
		r.resolveExpr(st.condition)
		r.resolveStmt(st.thenBranch)
		if st.elseBranch != nil {
			r.resolveStmt(st.elseBranch)
		}
	case *whileStmt:
		r.resolveExpr(st.condition)
		r.resolveStmt(st.body)
		if st.increment != nil {
			r.resolveExpr(st.increment)
		}
	case *returnStmt:
		if r.currentFunction == fnTypeNone {
			r.state.errorAt(st.keyword, errTopLevelReturn)
		}
		if st.value != nil {
			if r.currentFunction == fnTypeInitializer {
				r.state.errorAt(st.keyword, errInitializerReturn)
			}
			r.resolveExpr(st.value)
		}
	case *breakStmt, *continueStmt:
		// Loop placement is checked by the parser.
	default:
		panic(fmt.Sprintf("resolver: unexpected statement %T", s))
	}
}

func (r *resolver) resolveClass(st *classStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(st.name)
	r.define(st.name)

	if st.superclass != nil {
		if st.superclass.name.lexeme == st.name.lexeme {
			r.state.errorAt(st.superclass.name, errInheritFromSelf)
		}
		r.currentClass = classTypeSubclass
		r.resolveExpr(st.superclass)

		r.beginScope()
		r.peekScope()["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range st.methods {
		declaration := fnTypeMethod
		if method.name.lexeme == "init" {
			declaration = fnTypeInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
}

func (r *resolver) resolveFunction(fn *functionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(fn.body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *resolver) resolveExpr(e expr) {
	switch ex := e.(type) {
	case *variableExpr:
		if len(r.scopes) > 0 {
			if ready, declared := r.peekScope()[ex.name.lexeme]; declared && !ready {
				r.state.errorAt(ex.name, errReadInInitializer)
			}
		}
		r.resolveLocal(ex, ex.name.lexeme)
	case *assignExpr:
		r.resolveExpr(ex.value)
		r.resolveLocal(ex, ex.name.lexeme)
	case *binaryExpr:
		r.resolveExpr(ex.left)
		r.resolveExpr(ex.right)
	case *logicalExpr:
		r.resolveExpr(ex.left)
		r.resolveExpr(ex.right)
	case *ternaryExpr:
		r.resolveExpr(ex.test)
		r.resolveExpr(ex.ifTrue)
		r.resolveExpr(ex.ifFalse)
	case *unaryExpr:
		r.resolveExpr(ex.right)
	case *groupingExpr:
		r.resolveExpr(ex.expression)
	case *literalExpr:
	case *callExpr:
		r.resolveExpr(ex.callee)
		for _, argument := range ex.arguments {
			r.resolveExpr(argument)
		}
	case *getExpr:
		r.resolveExpr(ex.object)
	case *setExpr:
		r.resolveExpr(ex.value)
		r.resolveExpr(ex.object)
	case *thisExpr:
		if r.currentClass == classTypeNone {
			r.state.errorAt(ex.keyword, errThisOutsideClass)
			return
		}
		r.resolveLocal(ex, "this")
	case *superExpr:
		switch r.currentClass {
		case classTypeNone:
			r.state.errorAt(ex.keyword, errSuperOutsideClass)
		case classTypeClass:
			r.state.errorAt(ex.keyword, errSuperWithoutSuperclass)
		}
		r.resolveLocal(ex, "super")
	default:
		panic(fmt.Sprintf("resolver: unexpected expression %T", e))
	}
}

func (r *resolver) resolveLocal(e expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.peekScope()
	if _, ok := s[name.lexeme]; ok {
		r.state.errorAt(name, errAlreadyDeclared)
	}
	s[name.lexeme] = false
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.lexeme] = true
}
