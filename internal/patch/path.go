// Package patch applies ordered document-patch operations to resume documents.
// Paths use a small closed grammar (object key | array index | array append)
// parsed once into tokens; application is strictly ordered and all-or-nothing.
package patch

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind identifies one path segment's addressing mode
type TokenKind int

// Path token kinds
const (
	// TokenKey addresses an object field by name
	TokenKey TokenKind = iota
	// TokenIndex addresses an array element by position
	TokenIndex
	// TokenAppend addresses the position past the end of an array ("-"),
	// valid only as the final token of an add operation
	TokenAppend
)

// Token is one parsed path segment
type Token struct {
	Kind  TokenKind
	Key   string
	Index int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIndex:
		return strconv.Itoa(t.Index)
	case TokenAppend:
		return "-"
	default:
		return t.Key
	}
}

// ParsePath parses a document path such as "/contact/email" or
// "/experience/0/responsibilities/-" into tokens. The append marker is only
// legal as the final token; segments that look like non-negative integers are
// index tokens, everything else is a key token.
func ParsePath(path string) ([]Token, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path %q must start with '/'", path)
	}

	segments := strings.Split(path[1:], "/")
	tokens := make([]Token, 0, len(segments))
	for i, seg := range segments {
		switch {
		case seg == "":
			return nil, fmt.Errorf("path %q has an empty segment", path)
		case seg == "-":
			if i != len(segments)-1 {
				return nil, fmt.Errorf("path %q uses the append marker before the final segment", path)
			}
			tokens = append(tokens, Token{Kind: TokenAppend})
		default:
			if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 && !strings.HasPrefix(seg, "+") {
				tokens = append(tokens, Token{Kind: TokenIndex, Index: idx})
			} else {
				tokens = append(tokens, Token{Kind: TokenKey, Key: seg})
			}
		}
	}
	return tokens, nil
}
