package pager

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ───────────────────────────────────────────────────────────────────────────
// Row codec
// ───────────────────────────────────────────────────────────────────────────
//
// A Row is the only payload type this engine stores. It is fixed-width so
// that leafCellSize and LeafMaxCells (node.go) are compile-time constants,
// exactly as spec.md §3/§4.1 describes.
//
// Wire format (291 bytes, little-endian):
//
//	[0:4]    ID       uint32
//	[4:36]   Username [32]byte, zero-padded
//	[36:291] Email    [255]byte, zero-padded

const (
	UsernameSize = 32
	EmailSize    = 255

	idOff       = 0
	usernameOff = idOff + 4
	emailOff    = usernameOff + UsernameSize

	// RowSize is the serialized width of one row.
	RowSize = emailOff + EmailSize
)

// Row is an immutable record: a uint32 primary key plus two bounded
// UTF-8 strings.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// NewRow normalizes and validates username/email before constructing a
// Row. Unicode-normalizing (NFC) here means two inputs that are only
// byte-distinct by canonical equivalence serialize identically — a
// concern the original tutorial's raw byte copy does not have, since it
// never looked past ASCII.
func NewRow(id uint32, username, email string) (Row, error) {
	username = norm.NFC.String(username)
	email = norm.NFC.String(email)
	if !utf8.ValidString(username) || !utf8.ValidString(email) {
		return Row{}, fmt.Errorf("%w: invalid UTF-8", ErrStringTooLong)
	}
	if len(username) > UsernameSize {
		return Row{}, fmt.Errorf("username: %w", ErrStringTooLong)
	}
	if len(email) > EmailSize {
		return Row{}, fmt.Errorf("email: %w", ErrStringTooLong)
	}
	return Row{ID: id, Username: username, Email: email}, nil
}

// Serialize packs r into a 291-byte buffer.
func Serialize(r Row) [RowSize]byte {
	var buf [RowSize]byte
	binary.LittleEndian.PutUint32(buf[idOff:], r.ID)
	copy(buf[usernameOff:usernameOff+UsernameSize], r.Username)
	copy(buf[emailOff:emailOff+EmailSize], r.Email)
	return buf
}

// Deserialize is the inverse of Serialize. Trailing zero padding is
// stripped from both strings; it is never meaningful content.
func Deserialize(buf []byte) Row {
	id := binary.LittleEndian.Uint32(buf[idOff:])
	username := trimPadding(buf[usernameOff : usernameOff+UsernameSize])
	email := trimPadding(buf[emailOff : emailOff+EmailSize])
	return Row{ID: id, Username: username, Email: email}
}

func trimPadding(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return string(b[:i])
}
