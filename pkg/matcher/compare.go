package matcher

import (
	"cmp"
	"strings"

	"github.com/CoreMedia/joala-sub001/pkg/description"
)

type ordered[T cmp.Ordered] struct {
	base[T]
	bound T
	want  int
	text  string
}

// GreaterThan matches values strictly greater than bound.
func GreaterThan[T cmp.Ordered](bound T) Matcher[T] {
	return ordered[T]{bound: bound, want: 1, text: "a value greater than "}
}

// LessThan matches values strictly less than bound.
func LessThan[T cmp.Ordered](bound T) Matcher[T] {
	return ordered[T]{bound: bound, want: -1, text: "a value less than "}
}

func (m ordered[T]) Matches(value T) bool {
	return cmp.Compare(value, m.bound) == m.want
}

func (m ordered[T]) DescribeTo(d description.Description) {
	d.AppendText(m.text).AppendValue(m.bound)
}

type substring struct {
	base[string]
	part   string
	prefix bool
}

// ContainsString matches strings containing part.
func ContainsString(part string) Matcher[string] {
	return substring{part: part}
}

// HasPrefix matches strings starting with prefix.
func HasPrefix(prefix string) Matcher[string] {
	return substring{part: prefix, prefix: true}
}

func (m substring) Matches(value string) bool {
	if m.prefix {
		return strings.HasPrefix(value, m.part)
	}
	return strings.Contains(value, m.part)
}

func (m substring) DescribeTo(d description.Description) {
	if m.prefix {
		d.AppendText("a string starting with ")
	} else {
		d.AppendText("a string containing ")
	}
	d.AppendValue(m.part)
}
