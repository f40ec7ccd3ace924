package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type flow int

const (
	flowNormal flow = iota
	flowReturn
	flowBreak
	flowContinue
)

// signal tells the enclosing statement how execution left a statement.
type signal struct {
	flow  flow
	value interface{}
}

type exec struct {
	printer IPrinter
	log     *logrus.Logger

	globals *env
	env     *env
	locals  map[expr]int

	depth    int
	maxDepth int
}

func (e *exec) interpret(stmts []stmt) error {
	e.env = e.globals
	e.depth = 0
	for _, s := range stmts {
		if _, err := e.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *exec) execute(s stmt) (signal, error) {
	switch st := s.(type) {
	case *expressionStmt:
		_, err := e.evaluate(st.expression)
		return signal{}, err
	case *printStmt:
		value, err := e.evaluate(st.expression)
		if err != nil {
			return signal{}, err
		}
		e.printer.Println(stringify(value))
		return signal{}, nil
	case *varStmt:
		var value interface{}
		if st.initializer != nil {
			var err error
			if value, err = e.evaluate(st.initializer); err != nil {
				return signal{}, err
			}
		}
		e.env.define(st.name.lexeme, value)
		return signal{}, nil
	case *blockStmt:
		return e.executeBlock(st.stmts, newEnv(e.env))
	case *ifStmt:
		cond, err := e.evaluate(st.condition)
		if err != nil {
			return signal{}, err
		}
		if truthy(cond) {
			return e.execute(st.thenBranch)
		}
		if st.elseBranch != nil {
			return e.execute(st.elseBranch)
		}
		return signal{}, nil
	case *whileStmt:
		return e.executeWhile(st)
	case *functionStmt:
		e.env.define(st.name.lexeme, &loxFunction{
			declaration:   st,
			closure:       e.env,
			isInitializer: false,
		})
		return signal{}, nil
	case *returnStmt:
		var value interface{}
		if st.value != nil {
			var err error
			if value, err = e.evaluate(st.value); err != nil {
				return signal{}, err
			}
		}
		return signal{flow: flowReturn, value: value}, nil
	case *breakStmt:
		return signal{flow: flowBreak}, nil
	case *continueStmt:
		return signal{flow: flowContinue}, nil
	case *classStmt:
		return signal{}, e.executeClass(st)
	default:
		panic(fmt.Sprintf("exec: unexpected statement %T", s))
	}
}

// executeBlock runs stmts inside env and always restores the previous
// environment, whichever way the block is left.
func (e *exec) executeBlock(stmts []stmt, env *env) (signal, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		sig, err := e.execute(s)
		if err != nil || sig.flow != flowNormal {
			return sig, err
		}
	}
	return signal{}, nil
}

func (e *exec) executeWhile(st *whileStmt) (signal, error) {
	for {
		cond, err := e.evaluate(st.condition)
		if err != nil {
			return signal{}, err
		}
		if !truthy(cond) {
			return signal{}, nil
		}

		sig, err := e.execute(st.body)
		if err != nil {
			return signal{}, err
		}
		switch sig.flow {
		case flowBreak:
			return signal{}, nil
		case flowReturn:
			return sig, nil
		}

		if st.increment != nil {
			if _, err := e.evaluate(st.increment); err != nil {
				return signal{}, err
			}
		}
	}
}

func (e *exec) executeClass(st *classStmt) error {
	var superclass *loxClass
	if st.superclass != nil {
		value, err := e.evaluate(st.superclass)
		if err != nil {
			return err
		}
		class, ok := value.(*loxClass)
		if !ok {
			return newRuntimeError(st.superclass.name, errSuperclassNotClass)
		}
		superclass = class
	}

	e.env.define(st.name.lexeme, nil)

	if superclass != nil {
		e.env = newEnv(e.env)
		e.env.define("super", superclass)
	}

	methods := make(map[string]*loxFunction, len(st.methods))
	for _, method := range st.methods {
		methods[method.name.lexeme] = &loxFunction{
			declaration:   method,
			closure:       e.env,
			isInitializer: method.name.lexeme == "init",
		}
	}

	class := &loxClass{
		name:       st.name.lexeme,
		superclass: superclass,
		methods:    methods,
	}

	if superclass != nil {
		e.env = e.env.enclosing
	}

	e.env.define(st.name.lexeme, class)
	return nil
}

func (e *exec) evaluate(x expr) (interface{}, error) {
	switch ex := x.(type) {
	case *literalExpr:
		return ex.value, nil
	case *groupingExpr:
		return e.evaluate(ex.expression)
	case *unaryExpr:
		return e.evaluateUnary(ex)
	case *binaryExpr:
		return e.evaluateBinary(ex)
	case *logicalExpr:
		left, err := e.evaluate(ex.left)
		if err != nil {
			return nil, err
		}
		if ex.operator.token == tkOr {
			if truthy(left) {
				return left, nil
			}
		} else if !truthy(left) {
			return left, nil
		}
		return e.evaluate(ex.right)
	case *ternaryExpr:
		test, err := e.evaluate(ex.test)
		if err != nil {
			return nil, err
		}
		if truthy(test) {
			return e.evaluate(ex.ifTrue)
		}
		return e.evaluate(ex.ifFalse)
	case *variableExpr:
		return e.lookUpVariable(ex.name, ex)
	case *assignExpr:
		value, err := e.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		if distance, ok := e.locals[ex]; ok {
			e.env.assignAt(distance, ex.name, value)
			return value, nil
		}
		if err := e.globals.assign(ex.name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *callExpr:
		return e.evaluateCall(ex)
	case *getExpr:
		object, err := e.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*loxInstance)
		if !ok {
			return nil, newRuntimeError(ex.name, errOnlyInstanceProps)
		}
		return instance.get(ex.name)
	case *setExpr:
		object, err := e.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*loxInstance)
		if !ok {
			return nil, newRuntimeError(ex.name, errOnlyInstanceFields)
		}
		value, err := e.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		instance.set(ex.name, value)
		return value, nil
	case *thisExpr:
		return e.lookUpVariable(ex.keyword, ex)
	case *superExpr:
		return e.evaluateSuper(ex)
	default:
		panic(fmt.Sprintf("exec: unexpected expression %T", x))
	}
}

func (e *exec) evaluateUnary(ex *unaryExpr) (interface{}, error) {
	value, err := e.evaluate(ex.right)
	if err != nil {
		return nil, err
	}
	switch ex.operator.token {
	case tkBang:
		return loxBool(!truthy(value)), nil
	case tkMinus:
		n, ok := value.(loxNumber)
		if !ok {
			return nil, newRuntimeError(ex.operator, errOperandNumber)
		}
		return -n, nil
	}
	panic(fmt.Sprintf("exec: unexpected unary operator %s", ex.operator.token))
}

func (e *exec) evaluateBinary(ex *binaryExpr) (interface{}, error) {
	left, err := e.evaluate(ex.left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(ex.right)
	if err != nil {
		return nil, err
	}

	switch ex.operator.token {
	case tkComma:
		return right, nil
	case tkEqualEqual:
		return loxBool(isEqual(left, right)), nil
	case tkBangEqual:
		return loxBool(!isEqual(left, right)), nil
	case tkPlus:
		leftNum, leftIsNum := left.(loxNumber)
		rightNum, rightIsNum := right.(loxNumber)
		if leftIsNum && rightIsNum {
			return leftNum + rightNum, nil
		}
		_, leftIsStr := left.(loxString)
		_, rightIsStr := right.(loxString)
		if leftIsStr || rightIsStr {
			return loxString(stringify(left) + stringify(right)), nil
		}
		return nil, newRuntimeError(ex.operator, errOperandsAdd)
	}

	leftNum, rightNum, err := e.getNums(ex, left, right)
	if err != nil {
		return nil, err
	}
	switch ex.operator.token {
	case tkMinus:
		return leftNum - rightNum, nil
	case tkStar:
		return leftNum * rightNum, nil
	case tkSlash:
		if rightNum == 0 {
			return nil, newRuntimeError(ex.operator, errDivisionByZero)
		}
		return leftNum / rightNum, nil
	case tkGreater:
		return loxBool(leftNum > rightNum), nil
	case tkGreaterEqual:
		return loxBool(leftNum >= rightNum), nil
	case tkLess:
		return loxBool(leftNum < rightNum), nil
	case tkLessEqual:
		return loxBool(leftNum <= rightNum), nil
	}
	panic(fmt.Sprintf("exec: unexpected binary operator %s", ex.operator.token))
}

func (e *exec) getNums(binExpr *binaryExpr, left, right interface{}) (loxNumber, loxNumber, error) {
	leftNum, ok := left.(loxNumber)
	if !ok {
		return 0, 0, newRuntimeError(binExpr.operator, errOperandsNumbers)
	}
	rightNum, ok := right.(loxNumber)
	if !ok {
		return 0, 0, newRuntimeError(binExpr.operator, errOperandsNumbers)
	}
	return leftNum, rightNum, nil
}

func (e *exec) evaluateCall(ex *callExpr) (interface{}, error) {
	callee, err := e.evaluate(ex.callee)
	if err != nil {
		return nil, err
	}
	arguments := make([]interface{}, len(ex.arguments))
	for i := range ex.arguments {
		if arguments[i], err = e.evaluate(ex.arguments[i]); err != nil {
			return nil, err
		}
	}

	fn, isFn := callee.(callable)
	if !isFn {
		return nil, newRuntimeError(ex.paren, errOnlyCallable)
	}

	if len(arguments) != fn.arity() {
		return nil, newRuntimeError(ex.paren, detailf(errInvalidNumberArguments,
			"Expected %d arguments but got %d.", fn.arity(), len(arguments)))
	}

	if e.depth >= e.maxDepth {
		return nil, newRuntimeError(ex.paren, errStackOverflow)
	}
	e.depth++
	defer func() { e.depth-- }()

	if e.log.IsLevelEnabled(logrus.TraceLevel) {
		e.log.WithFields(logrus.Fields{
			"callee": stringify(callee),
			"depth":  e.depth,
			"line":   ex.paren.line,
		}).Trace("call")
	}

	return fn.call(e, arguments)
}

func (e *exec) evaluateSuper(ex *superExpr) (interface{}, error) {
	distance := e.locals[ex]
	superclass := e.env.getAt(distance, "super").(*loxClass)

	// "this" is always bound one environment inside "super".
	object := e.env.getAt(distance-1, "this").(*loxInstance)

	method := superclass.findMethod(ex.method.lexeme)
	if method == nil {
		return nil, newRuntimeError(ex.method, detailf(errUndefinedProp, "Undefined property '%s'.", ex.method.lexeme))
	}
	return method.bind(object), nil
}

func (e *exec) lookUpVariable(name *token, x expr) (interface{}, error) {
	if distance, ok := e.locals[x]; ok {
		return e.env.getAt(distance, name.lexeme), nil
	}
	return e.globals.get(name)
}
