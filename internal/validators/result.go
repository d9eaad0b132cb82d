package validators

// Result is the outcome of a single field check.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// FieldErrors maps a request field to every rule it violated.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field string, r Result) {
	if !r.IsValid {
		fe[field] = append(fe[field], r.Errors...)
	}
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

func result(errs []string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func invalid(msg string) Result {
	return Result{IsValid: false, Errors: []string{msg}}
}
