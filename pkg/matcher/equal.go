package matcher

import (
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/CoreMedia/joala-sub001/pkg/description"
)

// exportAll lets cmp look into unexported fields instead of panicking on them.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

type equalTo[T any] struct {
	expected T
}

// EqualTo matches values deeply equal to expected.
// Mismatches of composite values include a diff (-expected +actual).
func EqualTo[T any](expected T) Matcher[T] {
	return equalTo[T]{expected: expected}
}

func (m equalTo[T]) Matches(value T) bool {
	return cmp.Equal(m.expected, value, exportAll)
}

func (m equalTo[T]) DescribeTo(d description.Description) {
	d.AppendValue(m.expected)
}

func (m equalTo[T]) DescribeMismatch(value T, d description.Description) {
	d.AppendText("was ").AppendValue(value)
	if isComposite(value) {
		if diff := cmp.Diff(m.expected, value, exportAll); diff != "" {
			d.AppendText("\ndiff (-expected +actual):\n").AppendText(diff)
		}
	}
}

func isComposite(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr:
		return true
	}
	return false
}
