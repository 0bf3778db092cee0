package storage

import (
	"go.uber.org/zap"
)

// Table binds a Pager to a root page number: the user-facing database
// handle. This core never grows past a single leaf root, so RootPageNum
// is always 0.
type Table struct {
	pager       *Pager
	RootPageNum uint32

	logger *zap.Logger
}

// Open opens the database file at path, initializing page 0 as an empty
// leaf node if the file is freshly created. This guarantees the root is
// never left uninitialized after the first open.
func Open(path string, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pager, err := OpenPager(path, logger)
	if err != nil {
		return nil, err
	}

	table := &Table{
		pager:       pager,
		RootPageNum: 0,
		logger:      logger,
	}

	if pager.NumPages() == 0 {
		root, err := pager.GetPage(0)
		if err != nil {
			pager.Close()
			return nil, err
		}
		initializeLeafNode(root)
		logger.Info("initialized fresh database file", zap.String("path", path))
	}

	return table, nil
}

// Close flushes every cached page and releases the underlying file
// descriptor.
func (t *Table) Close() error {
	return t.pager.Close()
}

// RootNumCells returns the number of cells currently stored in the root
// leaf page. The executor façade consults this before every insert to
// decide between reporting the table full and actually inserting.
func (t *Table) RootNumCells() (uint32, error) {
	root, err := t.pager.GetPage(t.RootPageNum)
	if err != nil {
		return 0, err
	}
	return leafNumCells(root), nil
}
