package query

// NameChecker reports which of a set of names are absent from storage.
type NameChecker interface {
	Missing(names []string, casing Casing) ([]string, error)
}

// Validator checks that every tag and value referenced by a query exists.
type Validator struct {
	tags   NameChecker
	values NameChecker
}

// NewValidator creates a validator backed by the given tag and value lookups.
func NewValidator(tags, values NameChecker) *Validator {
	return &Validator{tags: tags, values: values}
}

// Validate returns a *ValidationError listing every unknown tag and value in
// e. A nil expression is always valid. Lookup failures are returned as is.
func (v *Validator) Validate(e Expr, casing Casing) error {
	if e == nil {
		return nil
	}

	var errs []error

	missingTags, err := v.tags.Missing(Tags(e), casing)
	if err != nil {
		return err
	}
	for _, name := range missingTags {
		errs = append(errs, &UnknownTagError{Name: name})
	}

	missingValues, err := v.values.Missing(Values(e), casing)
	if err != nil {
		return err
	}
	for _, name := range missingValues {
		errs = append(errs, &UnknownValueError{Name: name})
	}

	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}
