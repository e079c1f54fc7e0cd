package model

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FieldReader walks the whitespace separated tokens of a text problem file
type FieldReader struct {
	Pos    int
	Fields []string
}

// NewFieldReader splits data into fields
func NewFieldReader(data string) *FieldReader {
	return &FieldReader{0, strings.Fields(data)}
}

// Remaining is the count of fields not yet read
func (fr *FieldReader) Remaining() int {
	return len(fr.Fields) - fr.Pos
}

// Read returns the next field, or io.EOF once they are used up
func (fr *FieldReader) Read() (string, error) {
	if fr.Pos >= len(fr.Fields) {
		return "", io.EOF
	}
	p := fr.Pos
	fr.Pos++
	return fr.Fields[p], nil
}

// ReadInt reads the next field as a base 10 int
func (fr *FieldReader) ReadInt() (int, error) {
	s, err := fr.Read()
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid integer at field %d", fr.Pos)
	}
	return i, nil
}

// ReadFloat reads the next field as a float64
func (fr *FieldReader) ReadFloat() (float64, error) {
	s, err := fr.Read()
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid number at field %d", fr.Pos)
	}
	return f, nil
}

// ReadFloats fills dst from the next len(dst) fields
func (fr *FieldReader) ReadFloats(dst []float64) error {
	if fr.Remaining() < len(dst) {
		return errors.Wrapf(io.ErrUnexpectedEOF, "Need %d numbers but only %d fields remain", len(dst), fr.Remaining())
	}
	for i := range dst {
		v, err := fr.ReadFloat()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
