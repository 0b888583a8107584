// Package locator parses the repository references users type into a
// canonical owner/name pair.
package locator

import (
	"fmt"
	"strings"
)

// Ref identifies one repository on the hosting provider. Owner and Name
// are opaque, case-sensitive strings.
type Ref struct {
	Owner string
	Name  string
}

// String returns the canonical owner/name form.
func (r Ref) String() string {
	return r.Owner + "/" + r.Name
}

// CloneURL returns the https clone URL for the repository on host.
func (r Ref) CloneURL(host string) string {
	return fmt.Sprintf("https://%s/%s/%s.git", host, r.Owner, r.Name)
}

// ParseError indicates that an input could not be interpreted as a
// repository reference in any accepted form.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse repository reference %q: expected owner/name, an https URL, or an ssh URL", e.Input)
}

// Parse interprets input as a repository reference. Three forms are
// accepted: a bare "owner/name", an https URL, and an ssh URL of the
// git@host:owner/name form. A trailing ".git" is stripped. Parsing
// never returns a partial result.
func Parse(input string) (Ref, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Ref{}, &ParseError{Input: input}
	}

	switch {
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		rest := strings.SplitN(s, "://", 2)[1]
		parts := strings.Split(strings.Trim(rest, "/"), "/")
		// host/owner/name
		if len(parts) != 3 {
			return Ref{}, &ParseError{Input: input}
		}
		return makeRef(input, parts[1], parts[2])

	case strings.HasPrefix(s, "git@"):
		rest := strings.TrimPrefix(s, "git@")
		hostAndPath := strings.SplitN(rest, ":", 2)
		if len(hostAndPath) != 2 || hostAndPath[0] == "" {
			return Ref{}, &ParseError{Input: input}
		}
		parts := strings.Split(strings.Trim(hostAndPath[1], "/"), "/")
		if len(parts) != 2 {
			return Ref{}, &ParseError{Input: input}
		}
		return makeRef(input, parts[0], parts[1])

	default:
		parts := strings.Split(s, "/")
		if len(parts) != 2 {
			return Ref{}, &ParseError{Input: input}
		}
		return makeRef(input, parts[0], parts[1])
	}
}

func makeRef(input, owner, name string) (Ref, error) {
	name = strings.TrimSuffix(name, ".git")
	if owner == "" || name == "" {
		return Ref{}, &ParseError{Input: input}
	}
	if strings.ContainsAny(owner, " \t") || strings.ContainsAny(name, " \t") {
		return Ref{}, &ParseError{Input: input}
	}
	return Ref{Owner: owner, Name: name}, nil
}
