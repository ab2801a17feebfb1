package iocli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStdio подменяет терминал буферами
func newTestStdio(input string) (*Stdio, *strings.Builder) {
	out := &strings.Builder{}
	return &Stdio{
		in:  bufio.NewReader(strings.NewReader(input)),
		out: out,
	}, out
}

func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
	assert.NotNil(t, stdio.in)
	assert.NotNil(t, stdio.out)
}

func TestStdio_PrintlnAndPrintf(t *testing.T) {
	stdio, out := newTestStdio("")

	stdio.Println("hello", "world")
	stdio.Printf("count: %d\n", 3)

	assert.Equal(t, "hello world\ncount: 3\n", out.String())
}

func TestStdio_ReadInput(t *testing.T) {
	stdio, out := newTestStdio("  a@b.com  \n")

	input, err := stdio.ReadInput("Email: ")
	require.NoError(t, err)

	// Хвостовые пробелы и перевод строки срезаются
	assert.Equal(t, "a@b.com", input)
	assert.Equal(t, "Email: ", out.String())
}

func TestStdio_ReadInput_EOF(t *testing.T) {
	stdio, _ := newTestStdio("no newline")

	_, err := stdio.ReadInput("Email: ")
	require.Error(t, err)
}
