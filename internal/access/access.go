// Package access gates operations by table name and operation kind.
package access

import (
	"fmt"
	"regexp"
)

// Kind distinguishes reads from writes for read_only enforcement.
type Kind int

const (
	Read Kind = iota
	Write
)

// Config is the checker's own config type. Patterns are regular
// expressions matched against the full table name (anchored).
type Config struct {
	ReadOnly    bool
	AllowTables []string
	DenyTables  []string
}

// DeniedError is an operation rejected by access rules, before any network
// call. Its message is returned to the agent verbatim.
type DeniedError struct {
	Message string
}

func (e *DeniedError) Error() string {
	return e.Message
}

// Checker validates table access against compiled rules.
type Checker struct {
	readOnly bool
	allow    []*regexp.Regexp
	deny     []*regexp.Regexp
}

// NewChecker creates a new Checker. Returns an error on invalid regex patterns.
func NewChecker(config Config) (*Checker, error) {
	allow, err := compilePatterns(config.AllowTables)
	if err != nil {
		return nil, err
	}
	deny, err := compilePatterns(config.DenyTables)
	if err != nil {
		return nil, err
	}
	return &Checker{readOnly: config.ReadOnly, allow: allow, deny: deny}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("access: invalid table pattern %q: %v", p, err)
		}
		compiled[i] = re
	}
	return compiled, nil
}

// Check returns a *DeniedError when the operation is not permitted:
// writes in read_only mode, tables matching a deny rule, or tables outside
// a non-empty allow list. Deny wins over allow.
func (c *Checker) Check(table string, kind Kind) error {
	if c.readOnly && kind == Write {
		return &DeniedError{Message: "Write operations are disabled: server is in read_only mode"}
	}
	for _, re := range c.deny {
		if re.MatchString(table) {
			return &DeniedError{Message: fmt.Sprintf("Table %q is blocked by access rules", table)}
		}
	}
	if len(c.allow) > 0 {
		for _, re := range c.allow {
			if re.MatchString(table) {
				return nil
			}
		}
		return &DeniedError{Message: fmt.Sprintf("Table %q is not in the allowed table list", table)}
	}
	return nil
}
