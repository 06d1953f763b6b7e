package resumepdf

// Cursor holds the two column write heads. It is a value: primitives take
// a cursor and return its successor, and only the returned cursor is
// valid afterwards.
type Cursor struct {
	Left      float64
	Right     float64
	LeftPage  int
	RightPage int
}

func newCursor(g Geometry) Cursor {
	return Cursor{Left: g.Top, Right: g.Top}
}

// Y returns the vertical offset of col.
func (c Cursor) Y(col Column) float64 {
	if col == ColumnLeft {
		return c.Left
	}
	return c.Right
}

// Page returns the page index col writes to.
func (c Cursor) Page(col Column) int {
	if col == ColumnLeft {
		return c.LeftPage
	}
	return c.RightPage
}

// Advance moves col down by dy.
func (c Cursor) Advance(col Column, dy float64) Cursor {
	if col == ColumnLeft {
		c.Left += dy
	} else {
		c.Right += dy
	}
	return c
}

func (c Cursor) at(col Column, page int, y float64) Cursor {
	if col == ColumnLeft {
		c.LeftPage, c.Left = page, y
	} else {
		c.RightPage, c.Right = page, y
	}
	return c
}

// pageEpsilon absorbs float rounding in overflow comparisons.
const pageEpsilon = 1e-6

// ensureRoom guarantees that required millimetres fit below the cursor of
// col. When they do not, col continues at the top of its next page. A
// column already at the top of its page is left in place: breaking again
// would only add an empty page, and the primitives flow such blocks line
// by line.
func ensureRoom(g Geometry, c Cursor, col Column, required float64) Cursor {
	y := c.Y(col)
	if y+required <= g.Bottom+pageEpsilon {
		return c
	}
	if y <= g.Top+pageEpsilon {
		return c
	}
	return c.at(col, c.Page(col)+1, g.Top)
}
