package repl

import (
	"strconv"
	"strings"

	"github.com/leafbase/leafbase/storage"
)

// StatementType names the one of two statements this core's grammar
// recognizes.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed form of a single line of input.
type Statement struct {
	Type        StatementType
	RowToInsert storage.Row
}

// PrepareResult is the outcome of parsing a line into a Statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareNegativeID
	PrepareStringTooLong
	PrepareSyntaxError
	PrepareUnrecognizedStatement
)

// PrepareStatement parses line into a Statement, or reports why it could
// not. The grammar is deliberately tiny: "insert <id> <username>
// <email>" and "select", whitespace-separated, no quoting.
func PrepareStatement(line string) (Statement, PrepareResult) {
	switch {
	case strings.HasPrefix(line, "insert"):
		return prepareInsert(line)
	case strings.HasPrefix(line, "select"):
		return Statement{Type: StatementSelect}, PrepareSuccess
	default:
		return Statement{}, PrepareUnrecognizedStatement
	}
}

func prepareInsert(line string) (Statement, PrepareResult) {
	fields := strings.Fields(line)
	// fields[0] is the "insert" keyword itself.
	if len(fields) < 4 {
		return Statement{}, PrepareSyntaxError
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return Statement{}, PrepareSyntaxError
	}
	if id < 0 {
		return Statement{}, PrepareNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > storage.MaxUsernameLen || len(email) > storage.MaxEmailLen {
		return Statement{}, PrepareStringTooLong
	}

	return Statement{
		Type: StatementInsert,
		RowToInsert: storage.Row{
			ID:       uint32(id),
			Username: username,
			Email:    email,
		},
	}, PrepareSuccess
}
