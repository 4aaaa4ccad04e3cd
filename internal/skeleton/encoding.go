package skeleton

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PEP 263 declarations, e.g. `# -*- coding: latin-1 -*-`.
var (
	codingCookie   = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)
	blankOrComment = regexp.MustCompile(`^[ \t\f]*(?:[#\r\n]|$)`)
)

// decodeSource returns source as UTF-8. Source without an encoding
// declaration, or declaring UTF-8, must already be UTF-8. Otherwise the
// declared encoding is decoded. An unknown encoding, or a declaration that
// contradicts a UTF-8 byte order mark, makes the source unparseable.
func decodeSource(source []byte) ([]byte, error) {
	name, declared := declaredEncoding(source)
	if !declared || isUTF8Name(name) {
		if !utf8.Valid(source) {
			return nil, fmt.Errorf("%w: invalid utf-8", ErrUnparseable)
		}
		return source, nil
	}

	if bytes.HasPrefix(source, utf8BOM) {
		return nil, fmt.Errorf("%w: encoding %q declared after a utf-8 byte order mark", ErrUnparseable, name)
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	decoded, err := enc.NewDecoder().Bytes(source)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrUnparseable, name, err)
	}
	return decoded, nil
}

// declaredEncoding finds an encoding declaration on the first line, or on
// the second when the first is blank or a comment.
func declaredEncoding(source []byte) (string, bool) {
	lines := bytes.SplitAfterN(bytes.TrimPrefix(source, utf8BOM), []byte("\n"), 3)
	for i, line := range lines {
		if i == 2 {
			break
		}
		if m := codingCookie.FindSubmatch(line); m != nil {
			return strings.ToLower(string(m[1])), true
		}
		if !blankOrComment.Match(line) {
			break
		}
	}
	return "", false
}

func isUTF8Name(name string) bool {
	name = strings.ReplaceAll(name, "_", "-")
	return name == "utf-8" || name == "utf8" || strings.HasPrefix(name, "utf-8-")
}

// lookupEncoding resolves a codec name the way Python spells them
// (latin-1, iso8859_5, cp1252) against the IANA and WHATWG registries.
func lookupEncoding(name string) (encoding.Encoding, error) {
	candidates := []string{
		name,
		strings.ReplaceAll(name, "_", "-"),
		strings.ReplaceAll(strings.ReplaceAll(name, "_", ""), "-", ""),
	}
	for _, candidate := range candidates {
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return enc, nil
		}
		if enc, err := htmlindex.Get(candidate); err == nil {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown encoding %q", ErrUnparseable, name)
}
