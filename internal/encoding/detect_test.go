package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/clinicdesk/internal/encoding"
)

const priceList = "Name;Kind;Price\nDépilation;treatment;30,00\nSoin hydratant;service;45,00\n"

func decodeAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.Decode(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	got, charset := decodeAll(t, []byte(priceList))
	assert.Equal(t, priceList, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, priceList...)

	got, charset := decodeAll(t, input)
	assert.Equal(t, priceList, got)
	assert.Equal(t, encoding.UTF8BOM, charset)
}

func TestDecode_Windows1252(t *testing.T) {
	input, err := charmap.Windows1252.NewEncoder().Bytes([]byte(priceList))
	require.NoError(t, err)

	got, _ := decodeAll(t, input)
	assert.Equal(t, priceList, got)
}

func TestDecode_UTF16(t *testing.T) {
	tests := []struct {
		name    string
		endian  unicode.Endianness
		charset encoding.Charset
	}{
		{"LittleEndian", unicode.LittleEndian, encoding.UTF16LE},
		{"BigEndian", unicode.BigEndian, encoding.UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := unicode.UTF16(tt.endian, unicode.UseBOM).NewEncoder().Bytes([]byte(priceList))
			require.NoError(t, err)

			got, charset := decodeAll(t, input)
			assert.Equal(t, priceList, got)
			assert.Equal(t, tt.charset, charset)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	got, charset := decodeAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_LargeInput(t *testing.T) {
	// More than one sample's worth of data must come through intact.
	input := bytes.Repeat([]byte("Consultation;service;45\n"), 1000)

	got, _ := decodeAll(t, input)
	assert.Equal(t, string(input), got)
}

func TestNewUTF8Reader(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(priceList)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, priceList, string(got))
}
