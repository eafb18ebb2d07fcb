package description

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type server struct{ name string }

func (s *server) DescribeTo(d Description) {
	d.AppendText("server ").AppendText(s.name)
}

type fixed string

func (f fixed) DescribeTo(d Description) { d.AppendText(string(f)) }

func TestValueString(t *testing.T) {
	var nilServer *server

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "nil"},
		{"typed nil pointer", nilServer, "nil"},
		{"string is quoted", "ready", `"ready"`},
		{"int", 42, "<42>"},
		{"bool", true, "<true>"},
		{"error", errors.New("boom"), "boom"},
		{"stringer", 1500 * time.Millisecond, "1.5s"},
		{"self describing", &server{name: "db"}, "server db"},
		{"slice", []int{1, 2}, "<[1 2]>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValueString(tc.value))
		})
	}
}

func TestStringDescription_Chaining(t *testing.T) {
	d := NewStringDescription()
	d.AppendText("expected ").
		AppendValue(3).
		AppendText(" from ").
		AppendDescriptionOf(&server{name: "api"})

	assert.Equal(t, "expected <3> from server api", d.String())
}

func TestStringDescription_AppendList(t *testing.T) {
	d := NewStringDescription()
	d.AppendList("(", " and ", ")", []SelfDescribing{fixed("a"), fixed("b"), fixed("c")})
	assert.Equal(t, "(a and b and c)", d.String())

	empty := NewStringDescription()
	empty.AppendList("[", ", ", "]", nil)
	assert.Equal(t, "[]", empty.String())
}

func TestToString(t *testing.T) {
	assert.Equal(t, "server web", ToString(&server{name: "web"}))
	assert.Equal(t, "nil", ToString(nil))
}
