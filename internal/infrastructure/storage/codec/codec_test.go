package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_SmallPayloadUntouched(t *testing.T) {
	c, err := New(64)
	require.NoError(t, err)
	defer c.Close()

	data := []byte(`{"id":1}`)
	out, algo := c.Encode(data)
	assert.Equal(t, AlgoNone, algo)
	assert.Equal(t, data, out)
}

func TestCodec_LargePayloadCompressed(t *testing.T) {
	c, err := New(64)
	require.NoError(t, err)
	defer c.Close()

	data := bytes.Repeat([]byte(`{"provider":"Acme"},`), 200)
	out, algo := c.Encode(data)
	require.Equal(t, AlgoZstd, algo)
	assert.Less(t, len(out), len(data))

	back, err := c.Decode(out, algo)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestCodec_DecodeErrors(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decode([]byte("x"), "lz4")
	assert.Error(t, err)

	_, err = c.Decode([]byte("not zstd"), AlgoZstd)
	assert.Error(t, err)
}
