package reader

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/pgload/pkg/pgload"
)

var singleByteAliases = map[string]encoding.Encoding{
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"l1":           charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"iso88591":     charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"latin9":       charmap.ISO8859_15,
	"latin-9":      charmap.ISO8859_15,
	"iso-8859-15":  charmap.ISO8859_15,
}

func isUTF8(name string) bool {
	return name == "utf-8" || name == "utf8"
}

// ValidateEncoding reports whether name is a supported encoding.
func ValidateEncoding(name string) error {
	_, err := newDecoder(name)
	return err
}

// newDecoder returns a transformer that turns file bytes into UTF-8.
// UTF-8 input is validated and a leading byte order mark is dropped.
func newDecoder(name string) (transform.Transformer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if isUTF8(key) {
		return transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()), nil
	}
	enc, ok := singleByteAliases[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (use latin1, iso-8859-15, windows-1252 or utf-8)", pgload.ErrUnsupportedEncoding, name)
	}
	return enc.NewDecoder(), nil
}
