package repl

import (
	"fmt"
	"io"

	"github.com/leafbase/leafbase/storage"
)

// MetaCommandResult is the outcome of dispatching a leading-dot command.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandExit
	MetaCommandUnrecognized
)

// DoMetaCommand handles every command beginning with '.'. MetaCommandExit
// tells the caller to close table and stop the loop;
// everything else either prints directly to out or is reported back as
// MetaCommandUnrecognized so the caller can print the line verbatim.
func DoMetaCommand(line string, table *storage.Table, out io.Writer) MetaCommandResult {
	switch line {
	case ".exit":
		return MetaCommandExit
	case ".constants":
		fmt.Fprintln(out, "Constants:")
		printConstants(out)
		return MetaCommandSuccess
	case ".btree":
		fmt.Fprintln(out, "Tree:")
		printLeafNode(table, out)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognized
	}
}

func printConstants(out io.Writer) {
	fmt.Fprintf(out, "ROW_SIZE: %d\n", storage.RowSize)
	fmt.Fprintf(out, "COMMON_NODE_HEADER_SIZE: %d\n", storage.CommonNodeHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_HEADER_SIZE: %d\n", storage.LeafNodeHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_CELL_SIZE: %d\n", storage.LeafNodeCellSize)
	fmt.Fprintf(out, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", storage.LeafNodeSpaceForCells)
	fmt.Fprintf(out, "LEAF_NODE_MAX_CELLS: %d\n", storage.LeafNodeMaxCells)
}

// printLeafNode prints a plain-text dump of the root leaf's cells, one
// key per line in cell order.
func printLeafNode(table *storage.Table, out io.Writer) {
	n, err := table.RootNumCells()
	if err != nil {
		fmt.Fprintf(out, "leaf (size 0)\n")
		return
	}

	fmt.Fprintf(out, "leaf (size %d)\n", n)

	cur, err := storage.TableStart(table)
	if err != nil {
		return
	}
	for i := uint32(0); !cur.EndOfTable(); i++ {
		key, err := cur.Key()
		if err != nil {
			return
		}
		fmt.Fprintf(out, "  - %d : %d\n", i, key)
		if err := cur.Advance(); err != nil {
			return
		}
	}
}
