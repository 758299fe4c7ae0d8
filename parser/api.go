package parser

import (
	"fmt"
	"io"
	"strings"
)

// Option configures a parse call.
type Option func(*options)

type options struct {
	assoc Associativity
}

// WithAssociativity selects how chains of same-level operators nest.
func WithAssociativity(a Associativity) Option {
	return func(o *options) {
		o.assoc = a
	}
}

// ParseAssociativity maps "right" and "left" to an Associativity.
func ParseAssociativity(s string) (Associativity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right":
		return RightNested, nil
	case "left":
		return LeftFolded, nil
	default:
		return RightNested, fmt.Errorf("unknown associativity %q (want right or left)", s)
	}
}

// ParseString parses vecl source text.
func ParseString(src string, opts ...Option) (*Program, error) {
	return Parse(src, opts...)
}

// ParseReader consumes vecl source from an io.Reader and parses it.
func ParseReader(r io.Reader, opts ...Option) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), opts...)
}
