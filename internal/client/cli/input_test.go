package cli

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText_TrimsInput(t *testing.T) {
	got, err := GetSimpleText(reader("  hola \n"), "Nombre", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "hola", got)
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(reader("sin salto"), "Nombre", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "sin salto", got)
}

func TestGetOptionalText_EmptyMeansUnset(t *testing.T) {
	got, err := GetOptionalText(reader("\n"), "Color", io.Discard)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = GetOptionalText(reader("negro\n"), "Color", io.Discard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "negro", *got)
}

func TestGetOptionalInt(t *testing.T) {
	got, err := GetOptionalInt(reader("12\n"), "Cantidad", io.Discard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(12), *got)

	got, err = GetOptionalInt(reader("\n"), "Cantidad", io.Discard)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = GetOptionalInt(reader("doce\n"), "Cantidad", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cantidad")
}

func TestGetOptionalDecimal(t *testing.T) {
	got, err := GetOptionalDecimal(reader("-1.25\n"), "Esfera OD", io.Discard)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString("-1.25")))

	_, err = GetOptionalDecimal(reader("$10\n"), "Precio", io.Discard)
	require.Error(t, err)
}

func TestGetSecret_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(" token-1 "), nil }
	defer func() { readPassword = orig }()

	got, err := GetSecret(io.Discard, "Access token")
	require.NoError(t, err)
	assert.Equal(t, "token-1", got)
}
