package optional

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MapShouldTransformOnlyPresentValues(t *testing.T) {
	o := Map(Some(5), strconv.Itoa)
	assert.Equal(t, "5", o.MustValue())

	n := Map(None[int](), strconv.Itoa)
	assert.True(t, n.IsNone())
}

func Test_MapIdentityShouldPreserveTheOptional(t *testing.T) {
	id := func(v int) int { return v }

	assert.True(t, Equal(Some(5), Map(Some(5), id)))
	assert.True(t, Equal(None[int](), Map(None[int](), id)))
}

func Test_MapCompositionShouldMatchComposedMap(t *testing.T) {
	double := func(v int) int { return v * 2 }
	str := strconv.Itoa

	lhs := Map(Map(Some(21), double), str)
	rhs := Map(Some(21), func(v int) string { return str(double(v)) })

	assert.True(t, Equal(lhs, rhs))
}

func Test_AndThenShouldShortCircuitOnEmpty(t *testing.T) {
	parse := func(s string) Optional[int] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return None[int]()
		}
		return Some(n)
	}

	assert.Equal(t, 7, AndThen(Some("7"), parse).MustValue())
	assert.True(t, AndThen(Some("x"), parse).IsNone())
	assert.True(t, AndThen(None[string](), parse).IsNone())
}

func Test_FilterShouldKeepOnlyAcceptedValues(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }

	assert.Equal(t, 4, Filter(Some(4), even).MustValue())
	assert.True(t, Filter(Some(5), even).IsNone())
	assert.True(t, Filter(None[int](), even).IsNone())
}

func Test_ZipShouldRequireBothSides(t *testing.T) {
	z := Zip(Some(1), Some("a"))
	assert.Equal(t, Zipped[int, string]{First: 1, Second: "a"}, z.MustValue())

	assert.True(t, Zip(None[int](), Some("a")).IsNone())
	assert.True(t, Zip(Some(1), None[string]()).IsNone())
}

func Test_OrShouldPreferTheFirstPresentValue(t *testing.T) {
	assert.Equal(t, 1, Or(Some(1), Some(2)).MustValue())
	assert.Equal(t, 2, Or(None[int](), Some(2)).MustValue())
	assert.True(t, Or(None[int](), None[int]()).IsNone())
}

func Test_XorShouldRequireExactlyOneSide(t *testing.T) {
	assert.Equal(t, 1, Xor(Some(1), None[int]()).MustValue())
	assert.Equal(t, 2, Xor(None[int](), Some(2)).MustValue())
	assert.True(t, Xor(Some(1), Some(2)).IsNone())
	assert.True(t, Xor(None[int](), None[int]()).IsNone())
}

func Test_EqualShouldCompareBothPresenceAndValue(t *testing.T) {
	assert.True(t, Equal(Some(5), Some(5)))
	assert.False(t, Equal(Some(5), Some(6)))
	assert.False(t, Equal(Some(5), None[int]()))
	assert.True(t, Equal(None[int](), None[int]()))
}

func Test_CompareShouldOrderNoneFirst(t *testing.T) {
	assert.Equal(t, 0, Compare(None[int](), None[int]()))
	assert.Equal(t, -1, Compare(None[int](), Some(0)))
	assert.Equal(t, 1, Compare(Some(0), None[int]()))
	assert.Equal(t, -1, Compare(Some(1), Some(2)))
	assert.Equal(t, 1, Compare(Some(2), Some(1)))
	assert.Equal(t, 0, Compare(Some(2), Some(2)))
}
