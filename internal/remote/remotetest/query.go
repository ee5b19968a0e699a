package remotetest

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/openmined/drivemirror/internal/remote"
)

var ErrQuerySyntax = errors.New("remotetest: query syntax")

// predicate reports whether a stored node matches a parsed query.
type predicate func(n *node) bool

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokEquals
)

type token struct {
	kind  tokenKind
	value string
}

// parseQuery understands the subset of the Drive query language that remote.ListParams renders:
// terms joined by "and", where a term is one of
//
//	'<id>' in parents
//	not trashed
//	trashed = true|false
//	name = '<literal>'
//	mimeType = '<literal>'
func parseQuery(q string) (predicate, error) {
	tokens, err := tokenize(q)
	if err != nil {
		return nil, err
	}

	var preds []predicate
	for len(tokens) > 0 {
		var p predicate
		p, tokens, err = parseTerm(tokens)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)

		if len(tokens) == 0 {
			break
		}
		if tokens[0].kind != tokWord || tokens[0].value != "and" {
			return nil, fmt.Errorf("%w: expected 'and', got %q", ErrQuerySyntax, tokens[0].value)
		}
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: dangling 'and'", ErrQuerySyntax)
		}
	}

	return func(n *node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}, nil
}

func parseTerm(tokens []token) (predicate, []token, error) {
	switch {
	case matchTokens(tokens, tokString, tokWord, tokWord) && tokens[1].value == "in" && tokens[2].value == "parents":
		parent := tokens[0].value
		return func(n *node) bool {
			return slices.Contains(n.entry.Parents, parent)
		}, tokens[3:], nil

	case matchTokens(tokens, tokWord, tokWord) && tokens[0].value == "not" && tokens[1].value == "trashed":
		return func(n *node) bool { return !n.trashed }, tokens[2:], nil

	case matchTokens(tokens, tokWord, tokEquals, tokWord) && tokens[0].value == "trashed":
		want := tokens[2].value == "true"
		if tokens[2].value != "true" && tokens[2].value != "false" {
			return nil, nil, fmt.Errorf("%w: bad boolean %q", ErrQuerySyntax, tokens[2].value)
		}
		return func(n *node) bool { return n.trashed == want }, tokens[3:], nil

	case matchTokens(tokens, tokWord, tokEquals, tokString) && tokens[0].value == "name":
		name := tokens[2].value
		return func(n *node) bool { return n.entry.Name == name }, tokens[3:], nil

	case matchTokens(tokens, tokWord, tokEquals, tokString) && tokens[0].value == "mimeType":
		mimeType := tokens[2].value
		return func(n *node) bool { return n.entry.MimeType == mimeType }, tokens[3:], nil
	}

	return nil, nil, fmt.Errorf("%w: unexpected term starting with %q", ErrQuerySyntax, tokens[0].value)
}

func matchTokens(tokens []token, kinds ...tokenKind) bool {
	if len(tokens) < len(kinds) {
		return false
	}
	for i, k := range kinds {
		if tokens[i].kind != k {
			return false
		}
	}
	return true
}

func tokenize(q string) ([]token, error) {
	var tokens []token
	runes := []rune(q)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '=':
			tokens = append(tokens, token{kind: tokEquals, value: "="})
			i++

		case r == '\'':
			var sb strings.Builder
			i++
			closed := false
			for i < len(runes) {
				c := runes[i]
				if c == '\\' {
					if i+1 >= len(runes) {
						return nil, fmt.Errorf("%w: dangling escape", ErrQuerySyntax)
					}
					sb.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if c == '\'' {
					closed = true
					i++
					break
				}
				sb.WriteRune(c)
				i++
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated string", ErrQuerySyntax)
			}
			tokens = append(tokens, token{kind: tokString, value: sb.String()})

		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokWord, value: string(runes[start:i])})

		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrQuerySyntax, r)
		}
	}

	return tokens, nil
}

// Matches reports whether entry satisfies the query rendered by params.
func Matches(params *remote.ListParams, entry *remote.Entry) (bool, error) {
	pred, err := parseQuery(params.Query())
	if err != nil {
		return false, err
	}
	return pred(&node{entry: entry}), nil
}
