// Package description renders values and self-describing objects into the
// human readable text used by matcher and condition failure messages.
package description

import (
	"fmt"
	"reflect"
	"strings"
)

// SelfDescribing is implemented by anything that can describe itself,
// such as expressions, matchers or domain values that want a nicer
// rendering in failure messages than their default string form.
type SelfDescribing interface {
	DescribeTo(d Description)
}

// Description is a text buffer that collects descriptions.
// Every method returns the receiver so calls can be chained.
type Description interface {
	AppendText(text string) Description
	AppendValue(value any) Description
	AppendDescriptionOf(s SelfDescribing) Description
	AppendList(start, separator, end string, items []SelfDescribing) Description
}

// StringDescription is a Description backed by a strings.Builder.
type StringDescription struct {
	b *strings.Builder
}

// NewStringDescription creates an empty StringDescription.
func NewStringDescription() *StringDescription {
	return &StringDescription{b: &strings.Builder{}}
}

func (d *StringDescription) AppendText(text string) Description {
	d.b.WriteString(text)
	return d
}

func (d *StringDescription) AppendValue(value any) Description {
	if s, ok := value.(SelfDescribing); ok && !isNil(value) {
		return d.AppendDescriptionOf(s)
	}
	d.b.WriteString(ValueString(value))
	return d
}

func (d *StringDescription) AppendDescriptionOf(s SelfDescribing) Description {
	if s == nil || isNil(s) {
		d.b.WriteString("nil")
		return d
	}
	s.DescribeTo(d)
	return d
}

func (d *StringDescription) AppendList(start, separator, end string, items []SelfDescribing) Description {
	d.b.WriteString(start)
	for i, item := range items {
		if i > 0 {
			d.b.WriteString(separator)
		}
		d.AppendDescriptionOf(item)
	}
	d.b.WriteString(end)
	return d
}

// String returns the collected text.
func (d *StringDescription) String() string {
	return d.b.String()
}

// ToString returns the description of s.
func ToString(s SelfDescribing) string {
	d := NewStringDescription()
	d.AppendDescriptionOf(s)
	return d.String()
}

// ValueString renders value for a failure message.
//
// SelfDescribing values use their own description, strings are quoted,
// errors and fmt.Stringer use their text, anything else is printed as <%v>.
func ValueString(value any) string {
	if value == nil || isNil(value) {
		return "nil"
	}
	switch v := value.(type) {
	case SelfDescribing:
		return ToString(v)
	case string:
		return fmt.Sprintf("%q", v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("<%v>", v)
	}
}

// isNil catches typed nil pointers hidden in interfaces.
func isNil(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
