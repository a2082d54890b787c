package parser

import "strings"

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenMarker
)

type token struct {
	kind  tokenKind
	value string
}

// tokenize splits text into marker and text tokens. Markers are matched
// case-sensitively; when two markers start at the same offset the longer one
// wins.
func tokenize(text string, markers []string) []token {
	var tokens []token
	for len(text) > 0 {
		at, marker := nextMarker(text, markers)
		if at < 0 {
			tokens = append(tokens, token{kind: tokenText, value: text})
			break
		}
		if at > 0 {
			tokens = append(tokens, token{kind: tokenText, value: text[:at]})
		}
		tokens = append(tokens, token{kind: tokenMarker, value: marker})
		text = text[at+len(marker):]
	}
	return tokens
}

func nextMarker(text string, markers []string) (int, string) {
	at, found := -1, ""
	for _, m := range markers {
		i := strings.Index(text, m)
		if i < 0 {
			continue
		}
		if at < 0 || i < at || (i == at && len(m) > len(found)) {
			at, found = i, m
		}
	}
	return at, found
}
