package internal

type env struct {
	enclosing *env
	values    map[string]interface{}
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) (interface{}, error) {
	if value, ok := e.values[name.lexeme]; ok {
		return value, nil
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, newRuntimeError(name, detailf(errUndefinedVar, "Undefined variable '%s'.", name.lexeme))
}

func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

func (e *env) assign(name *token, value interface{}) error {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, value)
	}
	return newRuntimeError(name, detailf(errUndefinedVar, "Undefined variable '%s'.", name.lexeme))
}

// ancestor walks distance links up the chain. The resolver guarantees the
// chain is at least that long.
func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance; i++ {
		environment = environment.enclosing
	}
	return environment
}

func (e *env) getAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

func (e *env) assignAt(distance int, name *token, value interface{}) {
	e.ancestor(distance).values[name.lexeme] = value
}
