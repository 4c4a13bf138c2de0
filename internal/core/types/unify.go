// Copyright 2024 The Vix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"github.com/vix-lang/vix/vix/errors"
	"github.com/vix-lang/vix/vix/token"
)

// Unify makes left and right equal by committing substitutions into c,
// per spec §4.4's seven-step algorithm (resolve, bind-if-var, arrow,
// base, properties, else fail). pos is attributed to any resulting type
// error.
func (c *Context) Unify(pos token.Pos, left, right Type) errors.Error {
	l, lv := c.resolve(left)
	r, rv := c.resolve(right)

	switch {
	case lv != nil && rv != nil && lv.Name == rv.Name:
		// Both sides already resolve to the same live variable (e.g. two
		// mutually recursive fields whose types were already unified with
		// each other): re-unifying it with itself is a no-op, matching
		// bind's own self-check below. Running checkOccurs here would
		// wrongly flag v as occurring in itself.
		return nil

	case lv != nil:
		if err := c.checkOccurs(pos, *lv, r); err != nil {
			return err
		}
		c.bind(*lv, r)
		return nil

	case rv != nil:
		if err := c.checkOccurs(pos, *rv, l); err != nil {
			return err
		}
		c.bind(*rv, l)
		return nil
	}

	switch lt := l.(type) {
	case Arrow:
		rt, ok := r.(Arrow)
		if !ok {
			return typeMismatch(pos, l, r)
		}
		if err := c.Unify(pos, lt.Left, rt.Left); err != nil {
			return err
		}
		return c.Unify(pos, lt.Right, rt.Right)

	case Base:
		rt, ok := r.(Base)
		if !ok || rt.Name != lt.Name {
			return typeMismatch(pos, l, r)
		}
		return nil

	case *Properties:
		rt, ok := r.(*Properties)
		if !ok {
			return typeMismatch(pos, l, r)
		}
		return c.unifyProperties(pos, lt, rt)

	default:
		return typeMismatch(pos, l, r)
	}
}

// unifyProperties unifies two row types field by field, in left's
// declaration order (spec §4.4 step 6); a field missing from either side
// is a failure.
func (c *Context) unifyProperties(pos token.Pos, l, r *Properties) errors.Error {
	if len(l.Rows) != len(r.Rows) {
		return errors.Newf(errors.Type, pos,
			"cannot unify %s with %s: mismatched field count", l, r)
	}
	for _, lf := range l.Rows {
		rf, ok := r.Lookup(lf.Name)
		if !ok {
			return errors.Newf(errors.Type, pos,
				"cannot unify %s with %s: missing field %q", l, r, lf.Name)
		}
		if err := c.Unify(pos, lf.Type, rf); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) checkOccurs(pos token.Pos, v Var, t Type) errors.Error {
	if c.occurs(v, t) {
		return errors.Newf(errors.Type, pos, "occurs check failed: %s occurs in %s", v, t)
	}
	return nil
}

func typeMismatch(pos token.Pos, l, r Type) errors.Error {
	return errors.Newf(errors.Type, pos, "cannot unify %s with %s", l, r)
}
