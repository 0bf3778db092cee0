package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Row is the engine's sole schema: a non-negative id and two short,
// null-terminated text fields.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Field widths and offsets. Username holds at most 32 characters plus a
// trailing NUL; Email holds at most 255 characters plus a trailing NUL.
const (
	MaxUsernameLen = 32
	MaxEmailLen    = 255

	idSize       = 4
	usernameSize = MaxUsernameLen + 1 // 33, trailing NUL included
	emailSize    = MaxEmailLen + 1    // 256, trailing NUL included

	idOffset       = 0
	usernameOffset = idOffset + idSize             // 4
	emailOffset    = usernameOffset + usernameSize // 37

	// RowSize is the number of bytes serialize/deserialize exchange with a
	// cell's value region.
	RowSize = idSize + usernameSize + emailSize // 293
)

// SerializeRow writes row into dst at the documented offsets. dst must be
// at least RowSize bytes. Bytes beyond the username/email NUL terminator
// are left untouched: callers on a freshly allocated (zeroed) page get
// clean padding for free, callers reusing a cell slot do not.
func SerializeRow(row Row, dst []byte) error {
	if len(dst) < RowSize {
		return fmt.Errorf("serialize row: destination too small: %d < %d", len(dst), RowSize)
	}
	if len(row.Username) > MaxUsernameLen {
		return fmt.Errorf("serialize row: username exceeds %d bytes", MaxUsernameLen)
	}
	if len(row.Email) > MaxEmailLen {
		return fmt.Errorf("serialize row: email exceeds %d bytes", MaxEmailLen)
	}

	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], row.ID)

	n := copy(dst[usernameOffset:usernameOffset+usernameSize], row.Username)
	dst[usernameOffset+n] = 0

	n = copy(dst[emailOffset:emailOffset+emailSize], row.Email)
	dst[emailOffset+n] = 0

	return nil
}

// DeserializeRow reads a Row back out of src, which must be at least
// RowSize bytes. Username and Email are read as NUL-terminated strings.
func DeserializeRow(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize])

	usernameField := src[usernameOffset : usernameOffset+usernameSize]
	emailField := src[emailOffset : emailOffset+emailSize]

	return Row{
		ID:       id,
		Username: cString(usernameField),
		Email:    cString(emailField),
	}
}

func cString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}
