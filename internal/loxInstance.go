package internal

type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

// get looks at fields first, so a field shadows a method of the same name.
func (o *loxInstance) get(tk *token) (interface{}, error) {
	if val, ok := o.fields[tk.lexeme]; ok {
		return val, nil
	}
	if method := o.class.findMethod(tk.lexeme); method != nil {
		return method.bind(o), nil
	}
	return nil, newRuntimeError(tk, detailf(errUndefinedProp, "Undefined property '%s'.", tk.lexeme))
}

func (o *loxInstance) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *loxInstance) String() string {
	return o.class.name + " instance"
}
