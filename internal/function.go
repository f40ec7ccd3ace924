package internal

import "fmt"

type callable interface {
	arity() int
	call(exec *exec, arguments []interface{}) (interface{}, error)
}

type loxFunction struct {
	declaration   *functionStmt
	closure       *env
	isInitializer bool
}

type nativeFn struct {
	name       string
	arityValue int
	callFn     func(exec *exec, arguments []interface{}) (interface{}, error)
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []interface{}) (interface{}, error) {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

func (f *loxFunction) call(exec *exec, arguments []interface{}) (interface{}, error) {
	env := newEnv(f.closure)
	for i, param := range f.declaration.params {
		env.define(param.lexeme, arguments[i])
	}

	sig, err := exec.executeBlock(f.declaration.body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	if sig.flow == flowReturn {
		return sig.value, nil
	}
	return nil, nil
}

// bind returns a new function whose closure has "this" set to object.
// Every property access binds again, so two accesses never share a value.
func (f *loxFunction) bind(object *loxInstance) *loxFunction {
	environment := newEnv(f.closure)
	environment.define("this", object)
	return &loxFunction{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}
