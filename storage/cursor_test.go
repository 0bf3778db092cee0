package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { table.Close() })
	return table
}

func TestCursorInsertPreservesArrivalOrder(t *testing.T) {
	table := openTestTable(t)

	// Inserting 2 then 1 must leave the leaf as [2, 1]: rows stay in
	// arrival order, not key order, in this core.
	for _, id := range []uint32{2, 1} {
		cur, err := TableEnd(table)
		require.NoError(t, err)
		require.NoError(t, cur.Insert(id, Row{ID: id}))
	}

	cur, err := TableStart(table)
	require.NoError(t, err)

	var keys []uint32
	for !cur.EndOfTable() {
		val, err := cur.Value()
		require.NoError(t, err)
		keys = append(keys, DeserializeRow(val).ID)
		require.NoError(t, cur.Advance())
	}

	require.Equal(t, []uint32{2, 1}, keys)
}

func TestCursorInsertAtCapacityOverflows(t *testing.T) {
	table := openTestTable(t)

	for i := uint32(0); i < LeafNodeMaxCells; i++ {
		cur, err := TableEnd(table)
		require.NoError(t, err)
		require.NoError(t, cur.Insert(i, Row{ID: i}))
	}

	n, err := table.RootNumCells()
	require.NoError(t, err)
	require.Equal(t, uint32(LeafNodeMaxCells), n)

	cur, err := TableEnd(table)
	require.NoError(t, err)
	require.ErrorIs(t, cur.Insert(LeafNodeMaxCells, Row{ID: LeafNodeMaxCells}), ErrLeafOverflow)
}

func TestTableStartOnEmptyTableIsEndOfTable(t *testing.T) {
	table := openTestTable(t)

	cur, err := TableStart(table)
	require.NoError(t, err)
	require.True(t, cur.EndOfTable())
}
