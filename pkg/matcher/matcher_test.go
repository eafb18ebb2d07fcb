package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CoreMedia/joala-sub001/pkg/description"
)

type endpoint struct {
	Host string
	port int
}

func TestEqualTo(t *testing.T) {
	m := EqualTo(42)

	assert.True(t, m.Matches(42))
	assert.False(t, m.Matches(41))
	assert.Equal(t, "<42>", description.ToString(m))

	r := Evaluate(m, 41)
	assert.False(t, r.Matched)
	assert.Equal(t, "<42>", r.Expected)
	assert.Equal(t, "was <41>", r.Mismatch)
}

func TestEqualTo_UnexportedFields(t *testing.T) {
	m := EqualTo(endpoint{Host: "db", port: 5432})

	assert.True(t, m.Matches(endpoint{Host: "db", port: 5432}))
	assert.False(t, m.Matches(endpoint{Host: "db", port: 5433}))

	r := Evaluate(m, endpoint{Host: "db", port: 5433})
	assert.Contains(t, r.Mismatch, "diff (-expected +actual)")
	assert.Contains(t, r.Mismatch, "5433")
}

func TestEqualTo_Strings(t *testing.T) {
	r := Evaluate(EqualTo("ready"), "starting")
	assert.Equal(t, `"ready"`, r.Expected)
	assert.Equal(t, `was "starting"`, r.Mismatch)
}

func TestEvaluate_MatchHasNoMismatch(t *testing.T) {
	r := Evaluate(EqualTo("ok"), "ok")
	assert.True(t, r.Matched)
	assert.Empty(t, r.Mismatch)
}

func TestAnything(t *testing.T) {
	m := Anything[string]()
	assert.True(t, m.Matches(""))
	assert.Equal(t, "anything", description.ToString(m))
}

func TestSatisfies(t *testing.T) {
	even := Satisfies("an even number", func(v int) bool { return v%2 == 0 })

	assert.True(t, even.Matches(4))
	assert.False(t, even.Matches(3))
	assert.Equal(t, "an even number", description.ToString(even))
	assert.Equal(t, "was <3>", Evaluate(even, 3).Mismatch)

	assert.PanicsWithError(t, "required argument is nil: Satisfies predicate", func() { Satisfies[int]("nothing", nil) })
}

func TestNot(t *testing.T) {
	m := Not(EqualTo(0))
	assert.True(t, m.Matches(1))
	assert.False(t, m.Matches(0))
	assert.Equal(t, "not <0>", description.ToString(m))
}

func TestAllOf(t *testing.T) {
	m := AllOf(GreaterThan(1), LessThan(10))

	assert.True(t, m.Matches(5))
	assert.False(t, m.Matches(10))
	assert.Equal(t, "(a value greater than <1> and a value less than <10>)", description.ToString(m))
	assert.Equal(t, "a value less than <10> was <10>", Evaluate(m, 10).Mismatch)
}

func TestAnyOf(t *testing.T) {
	m := AnyOf(EqualTo(200), EqualTo(204))

	assert.True(t, m.Matches(204))
	assert.False(t, m.Matches(500))
	assert.Equal(t, "(<200> or <204>)", description.ToString(m))
}

func TestOrdered(t *testing.T) {
	assert.True(t, GreaterThan(1.5).Matches(2))
	assert.False(t, GreaterThan(2).Matches(2))
	assert.True(t, LessThan("b").Matches("a"))
	assert.False(t, LessThan(0).Matches(0))
}

func TestStringMatchers(t *testing.T) {
	contains := ContainsString("ok")
	assert.True(t, contains.Matches(`{"status":"ok"}`))
	assert.False(t, contains.Matches("down"))
	assert.Equal(t, `a string containing "ok"`, description.ToString(contains))

	prefix := HasPrefix("HTTP/")
	assert.True(t, prefix.Matches("HTTP/1.1"))
	assert.False(t, prefix.Matches("http/1.1"))
	assert.True(t, strings.HasPrefix(description.ToString(prefix), "a string starting with"))
}
