package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		text     string
		encoding string
	}{
		{"ascii", []byte("Ana,5551234"), "Ana,5551234", EncodingUTF8},
		{"utf8_accents", []byte("José,5551234"), "José,5551234", EncodingUTF8},
		{"utf8_bom", append([]byte{0xEF, 0xBB, 0xBF}, "nombre,telefono"...), "nombre,telefono", EncodingUTF8},
		{"latin1_accents", []byte{'J', 'o', 's', 0xE9, ',', '5'}, "José,5", EncodingLatin1},
		{"latin1_enye", []byte{'N', 'u', 0xF1, 'e', 'z'}, "Nuñez", EncodingLatin1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc := Decode(tt.raw)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.encoding, enc)
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ";", detectDelimiter([]string{"a;b", "c,d"}))
	assert.Equal(t, ",", detectDelimiter([]string{"a,b", "c;d"}))
	assert.Equal(t, ",", detectDelimiter(nil))
}

func TestParseRow(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		line   string
		reason SkipReason
	}{
		{"valid", 1, "Ana,5551234", ""},
		{"blank", 1, "  ", SkipBlank},
		{"header_first_line", 0, "Name,Phone", SkipHeader},
		{"header_word_later_is_data", 2, "Name,5551234", ""},
		{"one_column", 1, "Ana", SkipColumnCount},
		{"three_columns", 1, "Ana,555,1234", SkipColumnCount},
		{"empty_name", 1, " ,5551234", SkipEmptyField},
		{"short_phone", 1, "Ana,123", SkipInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact, reason := parseRow(tt.index, tt.line, ",")
			assert.Equal(t, tt.reason, reason)
			if tt.reason == "" {
				assert.NotNil(t, contact)
			} else {
				assert.Nil(t, contact)
			}
		})
	}
}
