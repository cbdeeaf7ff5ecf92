package csvshape

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is assumed when no encoding is configured.
const DefaultEncoding = "utf-8"

// isUTF8Name reports whether the encoding name means plain UTF-8, which needs
// no transformation.
func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// decodeReader wraps r so that bytes in the named encoding come out as UTF-8.
// Encoding names are resolved by their IANA/WHATWG labels.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	if isUTF8Name(name) {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// encodeWriter wraps w so that UTF-8 input is written in the named encoding.
// The returned closer flushes the transformer and must be called before the
// underlying writer is closed.
func encodeWriter(w io.Writer, name string) (io.Writer, func() error, error) {
	if isUTF8Name(name) {
		return w, func() error { return nil }, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}
