package query

import (
	"math"
	"strconv"
)

// The implication closure is built backwards from the queried (tag, value)
// pair: any pair whose implication leads into the set joins it. value_id 0
// stands for "any value". UNION discards rows already produced, so cyclic
// implications reach a fixpoint instead of recursing forever.
const closureStep = `UNION
        SELECT i.tag_id, i.value_id
        FROM implication i, ift
        WHERE i.implied_tag_id = ift.tag_id
        AND (ift.value_id = 0 OR i.implied_value_id = ift.value_id)`

// tag lowers a bare tag reference.
func (c *compiler) tag(n *Tagged) {
	collation := c.opts.Casing.Collation()

	if c.opts.Specificity == TagsExplicitOnly {
		c.b.PushSQL(`id IN (
    SELECT file_id
    FROM file_tag
    WHERE tag_id IN (
        SELECT id
        FROM tag
        WHERE name` + collation + ` = `).PushParameter(n.Tag)
		c.b.PushSQL(`
    )
)`)
		return
	}

	c.b.PushSQL(`id IN (
    WITH RECURSIVE ift (tag_id, value_id) AS (
        SELECT t.id, 0
        FROM tag t
        WHERE t.name` + collation + ` = `).PushParameter(n.Tag)
	c.b.PushSQL("\n        " + closureStep)
	c.closureJoin()
}

// comparison lowers tag/value comparisons. The seed holds every stored value
// of the tag satisfying the comparison.
func (c *compiler) comparison(n *Comparison) {
	collation := c.opts.Casing.Collation()
	operator, negate := n.Op.sqlOperator()

	prefix := "id IN ("
	if negate {
		prefix = "id NOT IN ("
	}

	with := "WITH RECURSIVE"
	if c.opts.Specificity == TagsExplicitOnly {
		with = "WITH"
	}

	c.b.PushSQL(prefix + `
    ` + with + ` ift (tag_id, value_id) AS (
        SELECT t.id, v.id
        FROM tag t, value v
        WHERE t.name` + collation + ` = `).PushParameter(n.Tag)

	if number, ok := numericValue(n.Value); ok {
		c.b.PushSQL("\n        AND CAST(v.name AS float) " + operator + " ").PushParameter(number)
	} else {
		c.b.PushSQL("\n        AND v.name" + collation + " " + operator + " ").PushParameter(n.Value)
	}

	if c.opts.Specificity == TagsExplicitOnly {
		c.b.PushSQL(`
    )
    SELECT file_id
    FROM file_tag
    INNER JOIN ift
    ON file_tag.tag_id = ift.tag_id
    AND file_tag.value_id = ift.value_id
)`)
		return
	}

	c.b.PushSQL("\n        " + closureStep)
	c.closureJoin()
}

// closureJoin closes the recursive CTE and selects files tagged with any
// pair in the closure.
func (c *compiler) closureJoin() {
	c.b.PushSQL(`
    )
    SELECT file_id
    FROM file_tag
    INNER JOIN ift
    ON file_tag.tag_id = ift.tag_id
    AND (file_tag.value_id = ift.value_id OR ift.value_id = 0)
)`)
}

// numericValue reports whether a value literal should compare numerically.
func numericValue(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
