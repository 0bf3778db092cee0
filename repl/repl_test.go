package repl

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leafbase/leafbase/storage"
)

// fakeLineReader replays a fixed script of lines, then returns io.EOF.
// It stands in for a real *readline.Instance in tests.
type fakeLineReader struct {
	lines []string
	pos   int
}

func (f *fakeLineReader) SetPrompt(string) {}

func (f *fakeLineReader) Readline() (string, error) {
	if f.pos >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.pos]
	f.pos++
	return line, nil
}

func openTestTable(t *testing.T) *storage.Table {
	t.Helper()
	table, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	return table
}

func TestScenarioEmptySelect(t *testing.T) {
	table := openTestTable(t)
	var out bytes.Buffer

	code := Run(table, nil, &fakeLineReader{lines: []string{"select", ".exit"}}, &out)

	require.Equal(t, 0, code)
	require.Equal(t, "Executed.\nbyte...\n", out.String())
}

func TestScenarioInsertAndSelect(t *testing.T) {
	table := openTestTable(t)
	var out bytes.Buffer

	code := Run(table, nil, &fakeLineReader{
		lines: []string{"insert 1 alice a@x", "select", ".exit"},
	}, &out)

	require.Equal(t, 0, code)
	require.Equal(t, "Executed.\n(1, alice, a@x)\nExecuted.\nbyte...\n", out.String())
}

func TestScenarioNegativeID(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	Run(table, nil, &fakeLineReader{lines: []string{"insert -7 bob b@x", ".exit"}}, &out)

	require.Equal(t, "ID must be positive.\nbyte...\n", out.String())
}

func TestScenarioStringTooLong(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	longUsername := strings.Repeat("a", storage.MaxUsernameLen+1)
	Run(table, nil, &fakeLineReader{lines: []string{"insert 2 " + longUsername + " e@x", ".exit"}}, &out)

	require.Equal(t, "String is too long.\nbyte...\n", out.String())
}

func TestScenarioPersistenceAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	tableA, err := storage.Open(path, nil)
	require.NoError(t, err)
	var outA bytes.Buffer
	codeA := Run(tableA, nil, &fakeLineReader{
		lines: []string{"insert 1 a a@x", "insert 2 b b@x", ".exit"},
	}, &outA)
	require.Equal(t, 0, codeA)

	tableB, err := storage.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { tableB.Close() })
	var outB bytes.Buffer
	Run(tableB, nil, &fakeLineReader{lines: []string{"select", ".exit"}}, &outB)

	require.Equal(t, "(1, a, a@x)\n(2, b, b@x)\nExecuted.\nbyte...\n", outB.String())
}

func TestScenarioCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	table, err := storage.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { table.Close() })

	var lines []string
	for i := uint32(0); i < storage.LeafNodeMaxCells; i++ {
		lines = append(lines, "insert "+strconv.Itoa(int(i))+" user user@x")
	}
	lines = append(lines, "insert "+strconv.Itoa(int(storage.LeafNodeMaxCells))+" user user@x")
	lines = append(lines, ".exit")

	var out bytes.Buffer
	code := Run(table, nil, &fakeLineReader{lines: lines}, &out)

	// .exit closed the table; reopen the file to count the cells written.
	reopened, err := storage.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	n, err := reopened.RootNumCells()
	require.NoError(t, err)
	require.Equal(t, uint32(storage.LeafNodeMaxCells), n)
	require.Equal(t, 0, code)
	require.True(t, strings.Contains(out.String(), "Error: Table full.\n"))
	require.True(t, strings.HasSuffix(out.String(), "byte...\n"))
}

func TestScenarioEmptyLinesIgnored(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	Run(table, nil, &fakeLineReader{lines: []string{"", "  ", ".exit"}}, &out)

	require.Equal(t, "byte...\n", out.String())
}

func TestScenarioUnexpectedEOF(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	code := Run(table, nil, &fakeLineReader{lines: nil}, &out)

	require.Equal(t, 1, code)
	require.Equal(t, "Error reading input\n", out.String())
}

func TestScenarioUnrecognizedCommand(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	Run(table, nil, &fakeLineReader{lines: []string{".frobnicate", ".exit"}}, &out)

	require.Equal(t, "Unrecognized command '.frobnicate'\nbyte...\n", out.String())
}

func TestScenarioUnrecognizedStatement(t *testing.T) {
	table := openTestTable(t)
	t.Cleanup(func() { table.Close() })
	var out bytes.Buffer

	Run(table, nil, &fakeLineReader{lines: []string{"delete 1", ".exit"}}, &out)

	require.Equal(t, "Unrecognized keyword at start of 'delete 1'\nbyte...\n", out.String())
}
