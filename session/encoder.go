package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrCorrupt reports a stored session blob that cannot be decoded. Callers
// treat it as a cache miss, never as a fatal condition.
var ErrCorrupt = errors.New("session record corrupt")

const recordFormatVersion = 1

// Encode serializes a [Record] into the flat binary cache format: a version
// byte, length-prefixed strings, a flag byte, and big-endian timestamps.
func Encode(r *Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordFormatVersion)

	for _, field := range []struct {
		name  string
		value string
	}{
		{"userID", r.UserID},
		{"name", r.Name},
		{"email", r.Email},
		{"role", r.Role},
		{"avatarID", r.AvatarID},
		{"avatarURL", r.AvatarURL},
	} {
		if len(field.value) > 255 {
			return nil, fmt.Errorf("%s too long", field.name)
		}
		buf.WriteByte(byte(len(field.value)))
		buf.WriteString(field.value)
	}

	if r.Verified {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	if err := binary.Write(&buf, binary.BigEndian, r.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, r.ExpiresAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by [Encode]. Any structural defect returns
// [ErrCorrupt].
func Decode(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil || version != recordFormatVersion {
		return nil, ErrCorrupt
	}

	var rec Record
	for _, dst := range []*string{
		&rec.UserID, &rec.Name, &rec.Email, &rec.Role, &rec.AvatarID, &rec.AvatarURL,
	} {
		value, err := readString(reader)
		if err != nil {
			return nil, ErrCorrupt
		}
		*dst = value
	}

	flag, err := reader.ReadByte()
	if err != nil || flag > 1 {
		return nil, ErrCorrupt
	}
	rec.Verified = flag == 1

	if err := binary.Read(reader, binary.BigEndian, &rec.CreatedAt); err != nil {
		return nil, ErrCorrupt
	}
	if err := binary.Read(reader, binary.BigEndian, &rec.ExpiresAt); err != nil {
		return nil, ErrCorrupt
	}

	if reader.Len() != 0 {
		return nil, ErrCorrupt
	}
	if rec.UserID == "" {
		return nil, ErrCorrupt
	}

	return &rec, nil
}

func readString(reader *bytes.Reader) (string, error) {
	length, err := reader.ReadByte()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return "", err
	}
	return string(raw), nil
}
