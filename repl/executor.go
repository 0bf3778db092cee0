package repl

import (
	"fmt"
	"io"

	"github.com/leafbase/leafbase/storage"
)

// ExecuteResult is the outcome of running a prepared Statement.
type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	// ExecuteFail accompanies every error the storage layer reports; no
	// statement returns it with a nil error today. Kept so a future
	// statement kind has a failure case ready to use.
	ExecuteFail
	ExecuteTableFull
)

// ExecuteStatement dispatches a prepared Statement against table, writing
// select output to out.
func ExecuteStatement(stmt Statement, table *storage.Table, out io.Writer) (ExecuteResult, error) {
	switch stmt.Type {
	case StatementInsert:
		return executeInsert(stmt, table)
	case StatementSelect:
		return executeSelect(table, out)
	default:
		return ExecuteFail, nil
	}
}

func executeInsert(stmt Statement, table *storage.Table) (ExecuteResult, error) {
	numCells, err := table.RootNumCells()
	if err != nil {
		return ExecuteFail, err
	}
	if numCells >= storage.LeafNodeMaxCells {
		return ExecuteTableFull, nil
	}

	cur, err := storage.TableEnd(table)
	if err != nil {
		return ExecuteFail, err
	}

	row := stmt.RowToInsert
	if err := cur.Insert(row.ID, row); err != nil {
		return ExecuteFail, err
	}

	return ExecuteSuccess, nil
}

func executeSelect(table *storage.Table, out io.Writer) (ExecuteResult, error) {
	cur, err := storage.TableStart(table)
	if err != nil {
		return ExecuteFail, err
	}

	for !cur.EndOfTable() {
		val, err := cur.Value()
		if err != nil {
			return ExecuteFail, err
		}

		row := storage.DeserializeRow(val)
		fmt.Fprintf(out, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)

		if err := cur.Advance(); err != nil {
			return ExecuteFail, err
		}
	}

	return ExecuteSuccess, nil
}
