package model

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFieldReader(t *testing.T) {
	assert := assert.New(t)

	fr := NewFieldReader("CAR\n 2  3\n1.5 -2e-3\tx\n")
	assert.Equal(6, fr.Remaining())

	s, err := fr.Read()
	assert.NoError(err)
	assert.Equal("CAR", s)

	i, err := fr.ReadInt()
	assert.NoError(err)
	assert.Equal(2, i)
	i, err = fr.ReadInt()
	assert.NoError(err)
	assert.Equal(3, i)

	row := make([]float64, 2)
	assert.NoError(fr.ReadFloats(row))
	assert.Equal([]float64{1.5, -0.002}, row)

	_, err = fr.ReadFloat()
	assert.Error(err)
	assert.Equal(0, fr.Remaining())

	_, err = fr.Read()
	assert.Equal(io.EOF, err)
	_, err = fr.ReadInt()
	assert.Equal(io.EOF, err)

	fr = NewFieldReader("1 2")
	err = fr.ReadFloats(make([]float64, 3))
	assert.True(errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(0, fr.Pos)

	fr = NewFieldReader("1.5")
	_, err = fr.ReadInt()
	assert.Error(err)
}
