package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.WithField("seed", 3).Info("decoded")
	assert.Contains(t, buf.String(), "msg=decoded")
	assert.Contains(t, buf.String(), "seed=3")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, Console().GetLevel())
	require.NoError(t, SetLevel(""))
	assert.Equal(t, logrus.DebugLevel, Console().GetLevel())
	require.Error(t, SetLevel("loud"))
	require.NoError(t, SetLevel("info"))
}
