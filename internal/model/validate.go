package model

import (
	stderrors "errors"
	"fmt"

	"nemesis/internal/errors"
	"nemesis/internal/names"
	"nemesis/internal/stdlib"
)

// Validate checks the model for the mistakes code generation cannot catch:
// undefined or invalid column names, invalid or duplicate component names,
// invalid expressions and references to undefined components. Expressions
// are checked only when v is non-nil. All problems are returned joined.
func (m *Model) Validate(v ExpressionValidator) error {
	var errs []error

	errs = append(errs, checkColumn("entity", m.EntityName)...)
	errs = append(errs, checkColumn("group", m.GroupName)...)

	seen := make(map[string]*Object)
	for _, c := range m.Components() {
		o := c.Base()
		what := string(stdlib.GetComponentDefinition(c.Kind()).Category)

		if !names.IsName(o.Name) {
			err := errors.InvalidName(what, o.Name)
			err.Position = o.Pos
			errs = append(errs, err)
		} else if first, dup := seen[o.Name]; dup {
			b := errors.Newf(errors.ErrorDuplicateName,
				"duplicate name '%s' among metrics, controls, and scores", o.Name).
				At(o.Pos).
				WithLength(len(o.Name))
			if first.Pos.IsValid() {
				b = b.WithNote(fmt.Sprintf("first defined at %s", first.Pos))
			}
			errs = append(errs, b.Build())
		} else {
			seen[o.Name] = o
		}

		errs = append(errs, c.check(v)...)
	}

	errs = append(errs, m.checkReferences()...)
	return stderrors.Join(errs...)
}

// Lint returns warnings about models that are valid but likely wrong.
func (m *Model) Lint() []*errors.CompilerError {
	var warnings []*errors.CompilerError
	for _, s := range m.CompositeScores {
		lc, ok := s.(*LinearCombinationScore)
		if !ok {
			continue
		}
		nonZero := false
		for _, t := range lc.Terms {
			nonZero = nonZero || t.Coeff != 0
		}
		if !nonZero {
			warnings = append(warnings, errors.NewWarning(errors.WarningEmptyCombination,
				fmt.Sprintf("linear combination '%s' has no non-zero terms and is always 0", lc.Name)).
				At(lc.Pos).
				Build())
		}
	}
	return warnings
}

func checkColumn(what, name string) []error {
	if name == "" {
		return []error{errors.Newf(errors.ErrorMissingColumn, "%s column is not defined", what).
			WithHelp(fmt.Sprintf("set '%s_name' to the column holding the %s ids", what, what)).
			Build()}
	}
	if !names.IsName(name) {
		return []error{errors.InvalidName(what+" column", name)}
	}
	return nil
}

func (m *Model) checkReferences() []error {
	controls := make([]string, len(m.Controls))
	for i, c := range m.Controls {
		controls[i] = c.Base().Name
	}
	metrics := make([]string, len(m.Metrics))
	for i, c := range m.Metrics {
		metrics[i] = c.Base().Name
	}

	var errs []error
	unknown := func(o *Object, what, name string, defined []string) {
		for _, d := range defined {
			if d == name {
				return
			}
		}
		err := errors.UnknownReference(what, name, defined)
		err.Position = o.Pos
		err.Length = len(o.Name)
		err.Notes = append(err.Notes, fmt.Sprintf("referenced by '%s'", o.Name))
		errs = append(errs, err)
	}

	for _, mt := range m.Metrics {
		for _, name := range mt.ControlNames() {
			unknown(mt.Base(), "control", name, controls)
		}
	}
	for _, s := range m.CompositeScores {
		if lc, ok := s.(*LinearCombinationScore); ok {
			for _, t := range lc.Terms {
				unknown(lc.Base(), "metric", t.Metric, metrics)
			}
		}
	}
	return errs
}

// checkExpressions reports every expression v rejects.
func checkExpressions(v ExpressionValidator, o *Object, exprs ...string) []error {
	if v == nil {
		return nil
	}
	var errs []error
	for _, e := range exprs {
		if !v.IsExpression(e) {
			errs = append(errs, errors.Newf(errors.ErrorInvalidExpression,
				"'%s' is not a valid R expression", e).
				At(o.Pos).
				WithLength(len(o.Name)).
				WithNote(fmt.Sprintf("in '%s'", o.Name)).
				Build())
		}
	}
	return errs
}
