package types

// Helpers that check a condition and return the matching EvalexprError when it
// does not hold. The returned error is nil on success, never a typed nil.

// ExpectOperatorArgumentAmount returns a WrongOperatorArgumentAmount error
// unless actual equals expected.
func ExpectOperatorArgumentAmount(actual, expected int) error {
	if actual == expected {
		return nil
	}
	return NewWrongOperatorArgumentAmount(actual, expected)
}

// ExpectFunctionArgumentAmount returns a WrongFunctionArgumentAmount error
// unless actual equals expected.
func ExpectFunctionArgumentAmount(actual, expected int) error {
	if actual == expected {
		return nil
	}
	return NewWrongFunctionArgumentAmount(actual, expected)
}

// ExpectString returns the string payload of v, or an ExpectedString error.
func ExpectString(v Value) (string, error) {
	if v.Type() != TypeString {
		return "", NewExpectedString(v)
	}
	return v.AsString(), nil
}

// ExpectNumber returns an ExpectedNumber error unless v is an int or a float.
func ExpectNumber(v Value) error {
	if v.IsNumber() {
		return nil
	}
	return NewExpectedNumber(v)
}

// ExpectNumberOrString returns an ExpectedNumberOrString error unless v is an
// int, a float or a string.
func ExpectNumberOrString(v Value) error {
	if v.IsNumber() || v.Type() == TypeString {
		return nil
	}
	return NewExpectedNumberOrString(v)
}

// ExpectBoolean returns the boolean payload of v, or an ExpectedBoolean error.
func ExpectBoolean(v Value) (bool, error) {
	if v.Type() != TypeBoolean {
		return false, NewExpectedBoolean(v)
	}
	return v.AsBool(), nil
}

// ExpectTuple returns the tuple payload of v, or an ExpectedTuple error.
func ExpectTuple(v Value) (TupleType, error) {
	if v.Type() != TypeTuple {
		return nil, NewExpectedTuple(v)
	}
	return v.AsTuple(), nil
}

// AssertPrecedence panics with a PrecedenceViolation error when ok is false.
// Tree builders call it on an invariant that valid input cannot break.
func AssertPrecedence(ok bool) {
	if !ok {
		panic(NewPrecedenceViolation())
	}
}
