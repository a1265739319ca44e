package sql

import "github.com/syssam/cargo"

// Case is a CASE WHEN ... THEN ... [ELSE ...] END builder. Branches append
// in call order; calling Else more than once is last-write-wins, not an
// error. With the field-name mode enabled, column references inside the
// branch conditions render without their table qualifier.
type Case struct {
	dialect   string
	total     int
	whens     []caseWhen
	els       Operand
	hasElse   bool
	alias     string
	fieldName bool
	errs      []error
}

type caseWhen struct {
	cond   Operand
	result Operand
}

// NewCase returns a case builder, optionally seeded with alternating
// condition/result pairs:
//
//	sql.NewCase(age.GT(18), "adult", age.GT(12), "teen")
//
// A trailing unpaired element is a build error.
func NewCase(pairs ...any) *Case {
	c := &Case{}
	c.When(pairs...)
	return c
}

// When appends one or more condition/result pairs in call order.
func (c *Case) When(pairs ...any) *Case {
	if len(pairs)%2 != 0 {
		c.errs = append(c.errs, cargo.NewBuildError("case requires condition/result pairs"))
		return c
	}
	for i := 0; i < len(pairs); i += 2 {
		c.whens = append(c.whens, caseWhen{
			cond:   toOperand(pairs[i]),
			result: toOperand(pairs[i+1]),
		})
	}
	return c
}

// Else sets the ELSE branch. The last call wins.
func (c *Case) Else(result any) *Case {
	c.els = toOperand(result)
	c.hasElse = true
	return c
}

// As sets the alias appended after END at the top level.
func (c *Case) As(alias string) *Case {
	c.alias = alias
	return c
}

// UseFieldName makes column references inside the branch conditions render
// without their table qualifier.
func (c *Case) UseFieldName() *Case {
	c.fieldName = true
	return c
}

// SetDialect sets the compilation dialect.
func (c *Case) SetDialect(d string) { c.dialect = d }

// SetTotal sets the placeholder offset.
func (c *Case) SetTotal(total int) { c.total = total }

// Err returns the first construction or compilation error.
func (c *Case) Err() error {
	if len(c.errs) > 0 {
		return c.errs[0]
	}
	return nil
}

// Query compiles the case expression. A case with no branches compiles to
// the degenerate CASE ELSE x END form when an else branch exists; with
// neither branches nor else it is a build error.
func (c *Case) Query() (string, []any) {
	b := NewBuilder(c.dialect)
	b.SetTotal(c.total)
	c.writeTo(b, true)
	c.errs = append(c.errs, b.errs...)
	return b.Query()
}

func (c *Case) writeTo(b *Builder, withAlias bool) {
	if len(c.whens) == 0 && !c.hasElse {
		b.AddError(cargo.NewBuildError("case requires at least one branch or an else"))
		return
	}
	b.WriteString("CASE")
	for _, w := range c.whens {
		b.WriteString(" WHEN ")
		bare := b.bareColumns
		b.bareColumns = c.fieldName || bare
		w.cond.write(b)
		b.bareColumns = bare
		b.WriteString(" THEN ")
		w.result.write(b)
	}
	if c.hasElse {
		b.WriteString(" ELSE ")
		c.els.write(b)
	}
	b.WriteString(" END")
	if withAlias && c.alias != "" {
		b.Pad()
		b.Ident(c.alias)
	}
}

// String implements fmt.Stringer for debugging.
func (c *Case) String() string { return queryString(c) }
