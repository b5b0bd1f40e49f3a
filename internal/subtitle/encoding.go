package subtitle

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// legacy single-byte Central European code page
const DefaultEncoding = "ISO-8859-2"

// ResolveEncoding maps an encoding name such as "ISO-8859-2",
// "windows-1250" or "UTF-8" to its codec. IANA names are tried first so
// that ISO-8859-1 stays Latin-1; WHATWG labels like "latin2" are accepted
// as a fallback.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return charmap.ISO8859_2, nil
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}
