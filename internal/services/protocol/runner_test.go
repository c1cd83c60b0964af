package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCappedBufferKeepsPrefix(t *testing.T) {
	b := &cappedBuffer{max: 5}

	n, err := b.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = b.Write([]byte(strings.Repeat("d", 100)))
	assert.NoError(t, err)
	assert.Equal(t, 100, n)

	assert.Equal(t, "abcdd", string(b.Bytes()))
}
