package linkedlist

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/seqstreams/errors"
)

// checkInvariants verifies that length matches the reachable chain and that
// tail points at the last node.
func checkInvariants[T any](t *testing.T, l *LinkedList[T]) {
	t.Helper()

	count := 0
	var last *node[T]
	for n := l.head; n != nil; n = n.next {
		count++
		last = n
	}
	require.Equal(t, l.length, count, "length must equal reachable nodes")
	if l.length == 0 {
		require.Nil(t, l.head)
		require.Nil(t, l.tail)
		return
	}
	require.Same(t, last, l.tail, "tail must be the last node")
	require.Nil(t, l.tail.next)
}

func TestConstructors(t *testing.T) {
	empty := New[int]()
	assert.Equal(t, 0, empty.Len())
	checkInvariants(t, empty)

	sized, err := NewWithSize[int](3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, sized.Items())
	checkInvariants(t, sized)

	_, err = NewWithSize[int](-1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	src := []int{1, 2, 3, 4, 5}
	l := FromSlice(src)
	assert.Equal(t, src, l.Items())
	checkInvariants(t, l)
}

func TestGetters(t *testing.T) {
	l := FromSlice([]int{1, 2})

	first, err := l.First()
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	last, err := l.Last()
	require.NoError(t, err)
	assert.Equal(t, 2, last)

	_, err = l.Get(2)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	_, err = l.Get(-1)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	err = l.Set(2, 0)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))

	empty := New[int]()
	_, err = empty.First()
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
	_, err = empty.Last()
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
}

func TestModifications(t *testing.T) {
	l := New[int]()

	l.Append(1)
	checkInvariants(t, l)
	l.Prepend(0)
	checkInvariants(t, l)
	require.NoError(t, l.InsertAt(5, 1))
	checkInvariants(t, l)
	require.NoError(t, l.Set(1, 10))
	require.NoError(t, l.InsertAt(7, l.Len()))
	checkInvariants(t, l)

	assert.Equal(t, []int{0, 10, 1, 7}, l.Items())

	last, _ := l.Last()
	assert.Equal(t, 7, last)
}

func TestPrependOnEmptySetsTail(t *testing.T) {
	l := New[string]()
	l.Prepend("a")
	checkInvariants(t, l)
	l.Append("b")
	assert.Equal(t, []string{"a", "b"}, l.Items())
}

func TestInsertAtInvalid(t *testing.T) {
	l := FromSlice([]int{1, 2, 3, 4})
	before := l.Items()

	for _, idx := range []int{-1, 5} {
		err := l.InsertAt(0, idx)
		assert.Truef(t, stderrors.Is(err, errors.ErrOutOfRange), "InsertAt(%d)", idx)
	}
	assert.Equal(t, before, l.Items())
	checkInvariants(t, l)
}

func TestInsertAtImmutable(t *testing.T) {
	l := FromSlice([]int{1, 2, 3})

	out, err := l.InsertAtImmutable(99, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 99, 2, 3}, out.Items())
	assert.Equal(t, []int{1, 2, 3}, l.Items())
	checkInvariants(t, out)

	_, err = l.InsertAtImmutable(99, 4)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
}

func TestResize(t *testing.T) {
	l := FromSlice([]int{1, 2, 3, 4})

	require.NoError(t, l.Resize(2))
	assert.Equal(t, []int{1, 2}, l.Items())
	checkInvariants(t, l)

	require.NoError(t, l.Resize(4))
	assert.Equal(t, []int{1, 2, 0, 0}, l.Items())
	checkInvariants(t, l)

	require.NoError(t, l.Resize(0))
	checkInvariants(t, l)

	err := l.Resize(-1)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))
}

func TestSubList(t *testing.T) {
	l := FromSlice([]int{1, 2, 3, 4, 5})

	sub, err := l.SubList(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, sub.Items())
	checkInvariants(t, sub)

	sub, err = l.SubList(4, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, sub.Items())

	invalid := [][2]int{{-1, 3}, {1, 5}, {3, 1}}
	for _, r := range invalid {
		_, err := l.SubList(r[0], r[1])
		assert.Truef(t, stderrors.Is(err, errors.ErrOutOfRange), "SubList(%d, %d)", r[0], r[1])
	}

	_, err = New[int]().SubList(0, 0)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfRange))
}

func TestConcat(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	b := FromSlice([]int{4, 5})

	c, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.Items())
	checkInvariants(t, c)

	// No node sharing between the result and either input
	for n := c.head; n != nil; n = n.next {
		for m := a.head; m != nil; m = m.next {
			require.NotSame(t, n, m)
		}
		for m := b.head; m != nil; m = m.next {
			require.NotSame(t, n, m)
		}
	}

	assert.Equal(t, []int{1, 2, 3}, a.Items())
	assert.Equal(t, []int{4, 5}, b.Items())
	checkInvariants(t, a)
	checkInvariants(t, b)

	self, err := a.Concat(a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, self.Items())

	_, err = a.Concat(nil)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))
}

func TestCloneAndCopyFrom(t *testing.T) {
	l := FromSlice([]int{1, 2, 3})

	clone := l.Clone()
	require.NoError(t, clone.Set(0, 100))
	first, _ := l.First()
	assert.Equal(t, 1, first)
	checkInvariants(t, clone)

	var assigned LinkedList[int]
	require.NoError(t, assigned.CopyFrom(l))
	assert.Equal(t, []int{1, 2, 3}, assigned.Items())

	require.NoError(t, assigned.CopyFrom(&assigned))
	assert.Equal(t, []int{1, 2, 3}, assigned.Items())
	checkInvariants(t, &assigned)

	err := assigned.CopyFrom(nil)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidArgument))

	var nilList *LinkedList[int]
	assert.Nil(t, nilList.Clone())
}

func TestClear(t *testing.T) {
	l := FromSlice([]int{1, 2, 3})
	l.Clear()
	checkInvariants(t, l)
	l.Append(4)
	assert.Equal(t, []int{4}, l.Items())
}

func TestPrintAndString(t *testing.T) {
	l := FromSlice([]int{1, 2, 3})

	var buf bytes.Buffer
	require.NoError(t, l.Print(&buf))
	assert.Equal(t, "1 -> 2 -> 3\n", buf.String())
	assert.Equal(t, "[1 2 3]", l.String())
	assert.Equal(t, "[]", New[int]().String())
}

func BenchmarkAppend(b *testing.B) {
	l := New[int]()
	for i := 0; i < b.N; i++ {
		l.Append(i)
	}
}
