package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/dnafountain/fec"
)

const referenceMessage = "01000001101011110000010110100101"

func decode(t *testing.T, drops []fec.Drop) (*fec.Decoder, error) {
	t.Helper()
	d, err := fec.NewDecoder(fec.ReferenceScheme())
	require.NoError(t, err)
	require.NoError(t, d.AddDrops(drops))
	return d, d.Peel()
}

func encode(t *testing.T) []fec.Drop {
	t.Helper()
	msg, err := fec.ParseBits(referenceMessage)
	require.NoError(t, err)
	drops, err := fec.Encode(fec.ReferenceScheme(), msg, fec.ReferenceSeeds())
	require.NoError(t, err)
	return drops
}

func TestCompleteReport(t *testing.T) {
	d, err := decode(t, encode(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(d, fec.ReferenceScheme(), err)))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "complete", got["outcome"])
	assert.Equal(t, referenceMessage, got["message"])
	assert.Equal(t, float64(16), got["drops"])
	assert.Equal(t, []interface{}{float64(5), float64(8)}, got["progress"])
	assert.Equal(t, []interface{}{}, got["missing"])
	assert.Len(t, got["blake2b"], 64)
	assert.NotContains(t, got, "error")
}

func TestIncompleteReport(t *testing.T) {
	d, err := decode(t, encode(t)[2:4])
	require.ErrorIs(t, err, fec.ErrIncomplete)

	r := New(d, fec.ReferenceScheme(), err)
	assert.Equal(t, "incomplete", r.Outcome)
	assert.Empty(t, r.Message)
	assert.Empty(t, r.Digest)
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, r.Missing)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r))
	assert.Contains(t, buf.String(), `"outcome":"incomplete"`)
	assert.Contains(t, buf.String(), `"missing":[1,2,4,5,6,7]`)
}

func TestDigestIsStable(t *testing.T) {
	a, err := fec.ParseBits(referenceMessage)
	require.NoError(t, err)
	b, err := fec.ParseBits(referenceMessage)
	require.NoError(t, err)
	assert.Equal(t, Digest(a), Digest(b))

	d, err := fec.ParseBits("1" + referenceMessage[1:])
	require.NoError(t, err)
	assert.NotEqual(t, Digest(a), Digest(d))
}
