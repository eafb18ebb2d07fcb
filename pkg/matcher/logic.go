package matcher

import (
	"github.com/CoreMedia/joala-sub001/pkg/description"
)

type not[T any] struct {
	base[T]
	inner Matcher[T]
}

// Not inverts inner.
func Not[T any](inner Matcher[T]) Matcher[T] {
	return not[T]{inner: inner}
}

func (m not[T]) Matches(value T) bool { return !m.inner.Matches(value) }

func (m not[T]) DescribeTo(d description.Description) {
	d.AppendText("not ").AppendDescriptionOf(m.inner)
}

type allOf[T any] struct {
	matchers []Matcher[T]
}

// AllOf matches when every one of matchers matches.
func AllOf[T any](matchers ...Matcher[T]) Matcher[T] {
	return allOf[T]{matchers: matchers}
}

func (m allOf[T]) Matches(value T) bool {
	for _, inner := range m.matchers {
		if !inner.Matches(value) {
			return false
		}
	}
	return true
}

func (m allOf[T]) DescribeTo(d description.Description) {
	d.AppendList("(", " and ", ")", selfDescribing(m.matchers))
}

// DescribeMismatch reports the first matcher that rejected value.
func (m allOf[T]) DescribeMismatch(value T, d description.Description) {
	for _, inner := range m.matchers {
		if !inner.Matches(value) {
			d.AppendDescriptionOf(inner).AppendText(" ")
			inner.DescribeMismatch(value, d)
			return
		}
	}
}

type anyOf[T any] struct {
	base[T]
	matchers []Matcher[T]
}

// AnyOf matches when at least one of matchers matches.
func AnyOf[T any](matchers ...Matcher[T]) Matcher[T] {
	return anyOf[T]{matchers: matchers}
}

func (m anyOf[T]) Matches(value T) bool {
	for _, inner := range m.matchers {
		if inner.Matches(value) {
			return true
		}
	}
	return false
}

func (m anyOf[T]) DescribeTo(d description.Description) {
	d.AppendList("(", " or ", ")", selfDescribing(m.matchers))
}

func selfDescribing[T any](matchers []Matcher[T]) []description.SelfDescribing {
	items := make([]description.SelfDescribing, len(matchers))
	for i, m := range matchers {
		items[i] = m
	}
	return items
}
