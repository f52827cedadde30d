package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineWithDefault(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, "value", LineWithDefault(strings.NewReader("  value \n"), &out, "Name", "def"))
	require.Equal(t, "Name [def]: ", out.String())

	require.Equal(t, "def", LineWithDefault(strings.NewReader("\n"), &out, "Name", "def"))
	require.Equal(t, "def", LineWithDefault(strings.NewReader(""), &out, "Name", "def"))
	require.Equal(t, "last", LineWithDefault(strings.NewReader("last"), &out, "Name", ""))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword([]byte("s3cret-pass!")))
	require.Error(t, ValidatePassword([]byte("short")))
	require.Error(t, ValidatePassword([]byte("has a space")))
	require.Error(t, ValidatePassword([]byte("tab\tinside!")))
}

func TestInfuraAPIKey(t *testing.T) {
	good := "0123456789abcdef0123456789ABCDEF"
	in := strings.NewReader("\nnot-hex\n" + good + "\n")
	var out bytes.Buffer

	key, err := InfuraAPIKey(in, &out)
	require.NoError(t, err)
	require.Equal(t, good, key)
	require.Contains(t, out.String(), "cannot be empty")
	require.Contains(t, out.String(), "length")
}

func TestInfuraAPIKeyEOF(t *testing.T) {
	_, err := InfuraAPIKey(strings.NewReader("zz\n"), &bytes.Buffer{})
	require.Error(t, err)
}

func TestZeroBytes(t *testing.T) {
	b := []byte("secret")
	ZeroBytes(b)
	require.Equal(t, make([]byte, 6), b)
}
