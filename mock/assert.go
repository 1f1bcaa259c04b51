package mock

import (
	"reflect"
	"testing"
)

// A Totaler is anything reporting a total count, such as a county.Counter.
type Totaler interface {
	TotalCount() int64
}

// A Lister is anything listing child names, such as a county.County.
type Lister interface {
	Children() []string
}

// AssertTotalCount asserts that c has total count exp.
func AssertTotalCount(tb testing.TB, c Totaler, exp int64) {
	tb.Helper()
	if n := c.TotalCount(); n != exp {
		tb.Errorf("county/mock: TotalCount: Expected: %d Got: %d", exp, n)
	}
}

// AssertChildren asserts that c has exactly the children exp, in order.
func AssertChildren(tb testing.TB, c Lister, exp ...string) {
	tb.Helper()
	got := c.Children()
	if len(got) == 0 && len(exp) == 0 {
		return
	}
	if !reflect.DeepEqual(got, exp) {
		tb.Errorf("county/mock: Children: Expected: %q Got: %q", exp, got)
	}
}

// AssertNoChildren asserts that c has no materialized children.
func AssertNoChildren(tb testing.TB, c Lister) {
	tb.Helper()
	if got := c.Children(); len(got) != 0 {
		tb.Errorf("county/mock: Children: expected none Got: %q", got)
	}
}

// fatal turns the Errorf of the Assert helpers into Fatalf.
type fatal struct {
	testing.TB
}

func (f fatal) Errorf(format string, args ...interface{}) {
	f.TB.Helper()
	f.TB.Fatalf(format, args...)
}

// Fatal wraps tb so that a failed Assert stops the test immediately
// instead of marking it failed and continuing.
//
//	c := mock.Fatal(t)
//	mock.AssertChildren(c, tree, "a")
//	mock.AssertTotalCount(c, tree.MustGet("a"), 1)
func Fatal(tb testing.TB) testing.TB {
	if f, ok := tb.(fatal); ok {
		return f
	}
	return fatal{TB: tb}
}
