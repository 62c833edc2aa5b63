package contacts

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{EncodingLatin1, charmap.ISO8859_1},
	{EncodingWindows1252, charmap.Windows1252},
}

// Decode converts an uploaded file to text, trying UTF-8 first and then the
// single-byte encodings spreadsheet tools commonly export. It returns the
// text and the name of the encoding that was used.
func Decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), EncodingUTF8
	}

	for _, fb := range fallbackEncodings {
		out, err := fb.enc.NewDecoder().Bytes(raw)
		if err == nil {
			return string(out), fb.name
		}
	}

	// ISO-8859-1 maps every byte, so this is unreachable in practice.
	return string(bytes.ToValidUTF8(raw, []byte("�"))), EncodingUTF8
}
