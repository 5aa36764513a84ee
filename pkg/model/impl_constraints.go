/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package model

func (c *buildContext) validateConstraints() {
	for _, d := range c.model.decls[1:] {
		for _, app := range d.Constraints() {
			if c.full() {
				return
			}
			if err := checkConstraintApp(d, app); err != nil {
				c.stmtErr(&app.pos, err)
			}
		}
	}
}

func checkConstraintApp(d IDecl, app *ConstraintApp) error {
	def := d.Model().Decl(app.def.target).(*ConstraintDef)

	// no applicability list means the constraint applies to anything
	if !def.appliesTo.IsEmpty() && !def.appliesTo.Contains(d.Kind()) {
		return ErrConstraintDoesntApply(def.qname, d.QName())
	}
	return checkSignature(def, app.args)
}

// checkSignature matches arguments against the signature:
//   - `()`: no arguments
//   - `(...)`: anything
//   - `(T1, ..., Tk, ...)`: at least k arguments, prefix matched by position, the rest must match Tk
//   - `(T1, ..., Tk)`: exactly k arguments matched by position
func checkSignature(def *ConstraintDef, args []ConstraintArg) error {
	sig := def.signature
	if len(sig) == 0 {
		if len(args) > 0 {
			return ErrNoParameter(def.qname, len(args))
		}
		return nil
	}

	prefix := sig
	if def.IsVariadic() {
		prefix = sig[:len(sig)-1]
		if len(prefix) == 0 {
			return nil
		}
		if len(args) < len(prefix) {
			return ErrWrongNumberOfParameter(def.qname, len(prefix), len(args))
		}
	} else if len(args) != len(sig) {
		return ErrWrongNumberOfParameter(def.qname, len(sig), len(args))
	}

	for i, token := range prefix {
		if !argMatches(token, args[i]) {
			return ErrWrongConstraintAtPos(def.qname, args[i].String(), i)
		}
	}
	last := prefix[len(prefix)-1]
	for _, arg := range args[len(prefix):] {
		if !argMatches(last, arg) {
			return ErrWrongConstraint(def.qname, arg.String())
		}
	}
	return nil
}

func argMatches(token string, arg ConstraintArg) bool {
	if arg.Kind == ArgKind_Ref && !arg.Ref.Resolved() {
		return false
	}
	return arg.Kind.Token() == token
}
