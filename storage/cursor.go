package storage

// Cursor is an ephemeral positional handle naming a specific cell within
// the table's root leaf. A Cursor becomes stale the moment any insert
// touches its page; this core never hands a Cursor a longer lifetime than
// the single operation that created it.
type Cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// TableStart returns a cursor positioned at the first cell of the table.
func TableStart(table *Table) (*Cursor, error) {
	root, err := table.pager.GetPage(table.RootPageNum)
	if err != nil {
		return nil, err
	}

	return &Cursor{
		table:      table,
		pageNum:    table.RootPageNum,
		cellNum:    0,
		endOfTable: leafNumCells(root) == 0,
	}, nil
}

// TableEnd returns a cursor positioned one past the last cell of the
// table, the position every insert in this core lands at.
func TableEnd(table *Table) (*Cursor, error) {
	root, err := table.pager.GetPage(table.RootPageNum)
	if err != nil {
		return nil, err
	}

	return &Cursor{
		table:      table,
		pageNum:    table.RootPageNum,
		cellNum:    leafNumCells(root),
		endOfTable: true,
	}, nil
}

// EndOfTable reports whether the cursor has advanced past the last cell.
func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}

// Key returns the key of the cell the cursor names, without touching its
// value region. Used by diagnostics that only need the key.
func (c *Cursor) Key() (uint32, error) {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return 0, err
	}
	return leafKey(page, c.cellNum), nil
}

// Value returns the value region of the cell the cursor names: RowSize
// bytes ready for DeserializeRow.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return nil, err
	}
	return leafValue(page, c.cellNum), nil
}

// Advance moves the cursor to the next cell, setting EndOfTable once it
// runs past the leaf's cell count. This core has only ever had a single
// leaf page, so advancing never crosses a page boundary.
func (c *Cursor) Advance() error {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}

	c.cellNum++
	if c.cellNum >= leafNumCells(page) {
		c.endOfTable = true
	}
	return nil
}

// Insert writes (key, row) into the cell the cursor names, shifting every
// later cell one slot to the right first. The executor façade always
// positions the cursor at TableEnd before calling Insert, so the shift
// loop below is dead in practice today; rows stay in arrival order rather
// than key order.
func (c *Cursor) Insert(key uint32, row Row) error {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}

	numCells := leafNumCells(page)
	if numCells >= LeafNodeMaxCells {
		// Unreachable today: the executor checks capacity before ever
		// acquiring a cursor to insert with. Kept as an explicit fatal
		// seam for when splitting is implemented.
		return ErrLeafOverflow
	}

	if c.cellNum < numCells {
		for i := numCells; i > c.cellNum; i-- {
			copy(leafCell(page, i), leafCell(page, i-1))
		}
	}

	setLeafNumCells(page, numCells+1)
	setLeafKey(page, c.cellNum, key)
	return SerializeRow(row, leafValue(page, c.cellNum))
}
