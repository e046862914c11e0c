package dynarray

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/seqstreams/errors"
)

// newFilled returns an array of size n holding 0..n-1, built through Set like
// the pre-sized constructor is meant to be used.
func newFilled(t *testing.T, n int) *DynamicArray[int] {
	t.Helper()
	a, err := NewWithSize[int](n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, a.Set(i, i))
	}
	return a
}

func TestConstructors(t *testing.T) {
	empty := New[int]()
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.Cap())

	sized, err := NewWithSize[int](5)
	require.NoError(t, err)
	assert.Equal(t, 5, sized.Len())
	for i := 0; i < 5; i++ {
		v, err := sized.Get(i)
		require.NoError(t, err)
		assert.Zero(t, v)
	}

	_, err = NewWithSize[int](-1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	src := []int{10, 20, 30}
	fromItems := FromSlice(src)
	assert.Equal(t, []int{10, 20, 30}, fromItems.Items())

	src[0] = 99
	v, _ := fromItems.Get(0)
	assert.Equal(t, 10, v, "FromSlice must copy its source")

	assert.Equal(t, 0, FromSlice[int](nil).Len())
}

func TestZeroValueIsUsable(t *testing.T) {
	var a DynamicArray[string]
	a.Append("x")
	a.Prepend("w")
	assert.Equal(t, []string{"w", "x"}, a.Items())
}

func TestGetters(t *testing.T) {
	a := newFilled(t, 3)
	empty := New[int]()

	first, err := a.First()
	require.NoError(t, err)
	assert.Equal(t, 0, first)

	last, err := a.Last()
	require.NoError(t, err)
	assert.Equal(t, 2, last)

	for _, idx := range []int{-1, 3, 100} {
		_, err := a.Get(idx)
		assert.Truef(t, stderrors.Is(err, errors.ErrOutOfRange), "Get(%d) should be out of range", idx)
	}

	_, err = empty.First()
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	_, err = empty.Last()
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
}

func TestAppendGrowth(t *testing.T) {
	a := New[int]()
	var caps []int
	for i := 0; i < 9; i++ {
		a.Append(i)
		caps = append(caps, a.Cap())

		last, err := a.Last()
		require.NoError(t, err)
		assert.Equal(t, i, last)
	}

	assert.Equal(t, []int{1, 2, 4, 4, 8, 8, 8, 8, 16}, caps)
	assert.Equal(t, 9, a.Len())
}

func TestPrepend(t *testing.T) {
	a := newFilled(t, 3)
	a.Prepend(-1)

	assert.Equal(t, []int{-1, 0, 1, 2}, a.Items())
	first, _ := a.First()
	assert.Equal(t, -1, first)
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected []int
	}{
		{"front", 0, []int{9, 0, 1, 2}},
		{"middle", 2, []int{0, 1, 9, 2}},
		{"end equals append", 3, []int{0, 1, 2, 9}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newFilled(t, 3)
			require.NoError(t, a.InsertAt(9, tc.index))
			assert.Equal(t, tc.expected, a.Items())
		})
	}
}

func TestInvalidModificationsLeaveArrayUnchanged(t *testing.T) {
	a := newFilled(t, 3)
	before := a.Items()
	capBefore := a.Cap()

	err := a.InsertAt(0, -1)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	err = a.InsertAt(0, 4)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	err = a.Set(-1, 0)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	err = a.Set(3, 0)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	err = a.Resize(-1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))
	_, err = a.Concat(nil)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	assert.Equal(t, before, a.Items())
	assert.Equal(t, capBefore, a.Cap())
	assert.True(t, errors.IsInvalid(err))
}

func TestResize(t *testing.T) {
	a := FromSlice([]int{1, 2, 3, 4})

	require.NoError(t, a.Resize(6))
	assert.Equal(t, []int{1, 2, 3, 4, 0, 0}, a.Items())

	capBefore := a.Cap()
	require.NoError(t, a.Resize(2))
	assert.Equal(t, []int{1, 2}, a.Items())
	assert.Equal(t, capBefore, a.Cap(), "capacity never shrinks")

	// Slots exposed again after a shrink must be zero, not stale
	require.NoError(t, a.Resize(4))
	assert.Equal(t, []int{1, 2, 0, 0}, a.Items())

	require.NoError(t, a.Resize(0))
	assert.Equal(t, 0, a.Len())
}

func TestSubArray(t *testing.T) {
	a := newFilled(t, 3)

	sub, err := a.SubArray(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sub.Items())

	sub, err = a.SubArray(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())

	sub, err = a.SubArray(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sub.Items())

	// The result owns its own buffer
	require.NoError(t, sub.Set(0, 100))
	v, _ := a.Get(1)
	assert.Equal(t, 1, v)

	invalid := [][2]int{{-1, 2}, {1, 3}, {2, 1}}
	for _, r := range invalid {
		_, err := a.SubArray(r[0], r[1])
		assert.Truef(t, stderrors.Is(err, errors.ErrOutOfRange), "SubArray(%d, %d)", r[0], r[1])
	}

	_, err = New[int]().SubArray(0, 0)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
}

func TestConcat(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	b := FromSlice([]int{4, 5})

	c, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.Items())
	assert.Equal(t, []int{1, 2, 3}, a.Items())
	assert.Equal(t, []int{4, 5}, b.Items())

	require.NoError(t, c.Set(0, 100))
	first, _ := a.First()
	assert.Equal(t, 1, first, "concat result must not alias its inputs")

	self, err := a.Concat(a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, self.Items())

	empty, err := New[int]().Concat(New[int]())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestClear(t *testing.T) {
	a := newFilled(t, 5)
	capBefore := a.Cap()
	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, capBefore, a.Cap())
}

func TestCloneAndCopyFrom(t *testing.T) {
	a := newFilled(t, 3)

	clone := a.Clone()
	require.NoError(t, clone.Set(1, 100))
	v, _ := a.Get(1)
	assert.Equal(t, 1, v)

	var assigned DynamicArray[int]
	require.NoError(t, assigned.CopyFrom(clone))
	assert.Equal(t, []int{0, 100, 2}, assigned.Items())

	// Self-assignment is observable as an unchanged state
	require.NoError(t, assigned.CopyFrom(&assigned))
	assert.Equal(t, []int{0, 100, 2}, assigned.Items())

	err := assigned.CopyFrom(nil)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	var nilArray *DynamicArray[int]
	assert.Nil(t, nilArray.Clone())
}

type box struct{ vals []int }

func (b box) Clone() box {
	return box{vals: append([]int(nil), b.vals...)}
}

func TestCloneUsesCloner(t *testing.T) {
	a := FromSlice([]box{{vals: []int{1}}})
	clone := a.Clone()

	v, _ := clone.Get(0)
	v.vals[0] = 42

	orig, _ := a.Get(0)
	assert.Equal(t, 1, orig.vals[0])
}

func TestPrintAndString(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})

	var buf bytes.Buffer
	require.NoError(t, a.Print(&buf))
	assert.Equal(t, "1 2 3\n", buf.String())
	assert.Equal(t, "[1 2 3]", a.String())
	assert.Equal(t, "[]", New[int]().String())
}

func BenchmarkAppend(b *testing.B) {
	a := New[int]()
	for i := 0; i < b.N; i++ {
		a.Append(i)
	}
}

func BenchmarkPrepend(b *testing.B) {
	a := New[int]()
	for i := 0; i < b.N && i < 10000; i++ {
		a.Prepend(i)
	}
}
