package sequence

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/c360/seqstreams/errors"
)

// ParitySuite runs the same behavioural checks against every backing.
type ParitySuite struct {
	suite.Suite
	kind Kind
}

func TestArraySequenceSuite(t *testing.T) {
	suite.Run(t, &ParitySuite{kind: KindArray})
}

func TestListSequenceSuite(t *testing.T) {
	suite.Run(t, &ParitySuite{kind: KindList})
}

func (s *ParitySuite) newSeq(items ...int) Sequence[int] {
	seq, err := New(s.kind, items)
	s.Require().NoError(err)
	return seq
}

func (s *ParitySuite) otherKind() Kind {
	if s.kind == KindArray {
		return KindList
	}
	return KindArray
}

func (s *ParitySuite) assertItems(want []int, seq Sequence[int]) {
	s.T().Helper()
	if diff := cmp.Diff(want, seq.Items()); diff != "" {
		s.Failf("items mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *ParitySuite) TestKind() {
	s.Equal(s.kind, s.newSeq().Kind())
}

func (s *ParitySuite) TestEmptySequence() {
	seq := s.newSeq()

	s.Equal(0, seq.Len())
	s.Equal([]int{}, seq.Items())

	_, err := seq.First()
	s.ErrorIs(err, errors.ErrOutOfRange)
	_, err = seq.Last()
	s.ErrorIs(err, errors.ErrOutOfRange)
	_, err = seq.Get(0)
	s.ErrorIs(err, errors.ErrOutOfRange)
}

func (s *ParitySuite) TestRoundTrip() {
	source := []int{4, 8, 15, 16, 23, 42}
	seq := s.newSeq(source...)

	s.assertItems(source, seq)
	s.Equal(len(source), seq.Len())

	// The sequence owns copies
	source[0] = -1
	v, err := seq.Get(0)
	s.Require().NoError(err)
	s.Equal(4, v)
}

func (s *ParitySuite) TestNilSourceIsEmpty() {
	seq, err := New[int](s.kind, nil)
	s.Require().NoError(err)
	s.Equal(0, seq.Len())
}

func (s *ParitySuite) TestSetGetLaw() {
	seq := s.newSeq(1, 2, 3)

	for i := 0; i < seq.Len(); i++ {
		_, err := seq.Set(i, i*10)
		s.Require().NoError(err)
		got, err := seq.Get(i)
		s.Require().NoError(err)
		s.Equal(i*10, got)
	}
	s.Equal(3, seq.Len())
}

func (s *ParitySuite) TestAppendPrependEnds() {
	seq := s.newSeq(5)

	seq.Append(6)
	last, err := seq.Last()
	s.Require().NoError(err)
	s.Equal(6, last)

	seq.Prepend(4)
	first, err := seq.First()
	s.Require().NoError(err)
	s.Equal(4, first)

	s.assertItems([]int{4, 5, 6}, seq)
}

func (s *ParitySuite) TestMutatingChains() {
	seq := s.newSeq()
	out := seq.Append(2).Append(3).Prepend(1)

	s.Same(seq, out)
	s.assertItems([]int{1, 2, 3}, seq)
}

func (s *ParitySuite) TestInsertAt() {
	tests := []struct {
		name    string
		index   int
		want    []int
		wantErr bool
	}{
		{"front", 0, []int{9, 1, 2, 3}, false},
		{"middle", 1, []int{1, 9, 2, 3}, false},
		{"end", 3, []int{1, 2, 3, 9}, false},
		{"negative", -1, []int{1, 2, 3}, true},
		{"past end", 4, []int{1, 2, 3}, true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			seq := s.newSeq(1, 2, 3)
			out, err := seq.InsertAt(9, tt.index)
			if tt.wantErr {
				s.ErrorIs(err, errors.ErrOutOfRange)
				s.True(errors.IsInvalid(err))
				s.Nil(out)
			} else {
				s.Require().NoError(err)
				s.Same(seq, out)
			}
			s.assertItems(tt.want, seq)
		})
	}
}

func (s *ParitySuite) TestOutOfRangeAccess() {
	seq := s.newSeq(1, 2, 3)

	for _, index := range []int{-1, 3, 100} {
		_, err := seq.Get(index)
		s.ErrorIs(err, errors.ErrOutOfRange, "Get(%d)", index)

		_, err = seq.Set(index, 0)
		s.ErrorIs(err, errors.ErrOutOfRange, "Set(%d)", index)

		_, err = seq.SetImmutable(index, 0)
		s.ErrorIs(err, errors.ErrOutOfRange, "SetImmutable(%d)", index)
	}
	s.assertItems([]int{1, 2, 3}, seq)
}

func (s *ParitySuite) TestPersistentLaw() {
	seq := s.newSeq(1, 2, 3)
	before := seq.Items()

	results := map[string]func() (Sequence[int], error){
		"AppendImmutable":  func() (Sequence[int], error) { return seq.AppendImmutable(4), nil },
		"PrependImmutable": func() (Sequence[int], error) { return seq.PrependImmutable(0), nil },
		"InsertAtImmutable": func() (Sequence[int], error) {
			return seq.InsertAtImmutable(9, 1)
		},
		"SetImmutable": func() (Sequence[int], error) { return seq.SetImmutable(0, 7) },
		"ConcatImmutable": func() (Sequence[int], error) {
			return seq.ConcatImmutable(s.newSeq(4, 5))
		},
	}
	want := map[string][]int{
		"AppendImmutable":   {1, 2, 3, 4},
		"PrependImmutable":  {0, 1, 2, 3},
		"InsertAtImmutable": {1, 9, 2, 3},
		"SetImmutable":      {7, 2, 3},
		"ConcatImmutable":   {1, 2, 3, 4, 5},
	}

	for name, op := range results {
		s.Run(name, func() {
			out, err := op()
			s.Require().NoError(err)
			s.NotSame(seq, out)
			s.Equal(s.kind, out.Kind())
			s.assertItems(want[name], out)

			if diff := cmp.Diff(before, seq.Items()); diff != "" {
				s.Failf("receiver changed", "%s modified the receiver (-before +after):\n%s", name, diff)
			}
		})
	}
}

func (s *ParitySuite) TestPersistentResultIsIndependent() {
	seq := s.newSeq(1, 2, 3)
	out := seq.AppendImmutable(4)

	_, err := out.Set(0, 100)
	s.Require().NoError(err)
	seq.Append(5)

	s.assertItems([]int{1, 2, 3, 5}, seq)
	s.assertItems([]int{100, 2, 3, 4}, out)
}

func (s *ParitySuite) TestFailedPersistentOpsLeaveReceiver() {
	seq := s.newSeq(1, 2, 3)

	_, err := seq.InsertAtImmutable(9, 10)
	s.ErrorIs(err, errors.ErrOutOfRange)
	_, err = seq.SetImmutable(-1, 9)
	s.ErrorIs(err, errors.ErrOutOfRange)

	s.assertItems([]int{1, 2, 3}, seq)
}

func (s *ParitySuite) TestSubsequence() {
	seq := s.newSeq(1, 2, 3, 4, 5)

	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"middle", 1, 3, []int{2, 3, 4}},
		{"single", 2, 2, []int{3}},
		{"whole", 0, 4, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			sub, err := seq.Subsequence(tt.start, tt.end)
			s.Require().NoError(err)
			s.Equal(s.kind, sub.Kind())
			s.assertItems(tt.want, sub)
		})
	}

	// The subsequence is a copy
	sub, err := seq.Subsequence(0, 1)
	s.Require().NoError(err)
	_, err = sub.Set(0, 99)
	s.Require().NoError(err)
	s.assertItems([]int{1, 2, 3, 4, 5}, seq)
}

func (s *ParitySuite) TestSubsequenceBounds() {
	seq := s.newSeq(1, 2, 3, 4, 5)

	for _, r := range [][2]int{{-1, 2}, {3, 1}, {0, 5}, {5, 5}} {
		sub, err := seq.Subsequence(r[0], r[1])
		s.ErrorIs(err, errors.ErrOutOfRange, "Subsequence(%d, %d)", r[0], r[1])
		s.Nil(sub)
	}

	_, err := s.newSeq().Subsequence(0, 0)
	s.ErrorIs(err, errors.ErrOutOfRange)
}

func (s *ParitySuite) TestConcat() {
	seq := s.newSeq(1, 2)
	other := s.newSeq(3, 4, 5)

	out, err := seq.Concat(other)
	s.Require().NoError(err)
	s.Same(seq, out)
	s.Equal(5, seq.Len())
	s.assertItems([]int{1, 2, 3, 4, 5}, seq)
	s.assertItems([]int{3, 4, 5}, other)

	// Later changes to other do not leak into seq
	other.Append(6)
	s.Equal(5, seq.Len())
}

func (s *ParitySuite) TestConcatEmpty() {
	seq := s.newSeq(1, 2)

	_, err := seq.Concat(s.newSeq())
	s.Require().NoError(err)
	s.assertItems([]int{1, 2}, seq)

	empty := s.newSeq()
	_, err = empty.Concat(s.newSeq(7))
	s.Require().NoError(err)
	s.assertItems([]int{7}, empty)
	last, err := empty.Last()
	s.Require().NoError(err)
	s.Equal(7, last)
}

func (s *ParitySuite) TestSelfConcat() {
	seq := s.newSeq(1, 2, 3)

	_, err := seq.Concat(seq)
	s.Require().NoError(err)
	s.assertItems([]int{1, 2, 3, 1, 2, 3}, seq)

	doubled, err := seq.ConcatImmutable(seq)
	s.Require().NoError(err)
	s.Equal(12, doubled.Len())
	s.Equal(6, seq.Len())
}

func (s *ParitySuite) TestConcatRejects() {
	seq := s.newSeq(1, 2)

	_, err := seq.Concat(nil)
	s.ErrorIs(err, errors.ErrInvalidArgument)

	_, err = seq.ConcatImmutable(nil)
	s.ErrorIs(err, errors.ErrInvalidArgument)

	var typedNilArray *ArraySequence[int]
	_, err = seq.Concat(typedNilArray)
	s.ErrorIs(err, errors.ErrInvalidArgument)

	var typedNilList *ListSequence[int]
	_, err = seq.ConcatImmutable(typedNilList)
	s.ErrorIs(err, errors.ErrInvalidArgument)

	mixed, err := New(s.otherKind(), []int{3})
	s.Require().NoError(err)

	_, err = seq.Concat(mixed)
	s.ErrorIs(err, errors.ErrTypeMismatch)
	s.True(errors.IsInvalid(err))

	_, err = seq.ConcatImmutable(mixed)
	s.ErrorIs(err, errors.ErrTypeMismatch)

	s.assertItems([]int{1, 2}, seq)
}

// The scenario used to illustrate the sequence operations.
func (s *ParitySuite) TestWalkthrough() {
	seq := s.newSeq(1, 2, 3, 4, 5)

	sub, err := seq.Subsequence(1, 3)
	s.Require().NoError(err)
	s.assertItems([]int{2, 3, 4}, sub)

	concatenated, err := seq.ConcatImmutable(s.newSeq(6, 7, 8))
	s.Require().NoError(err)
	s.Equal(8, concatenated.Len())

	inserted, err := seq.InsertAtImmutable(99, 2)
	s.Require().NoError(err)
	s.assertItems([]int{1, 2, 99, 3, 4, 5}, inserted)
	s.assertItems([]int{1, 2, 3, 4, 5}, seq)
}

func (s *ParitySuite) TestClone() {
	seq := s.newSeq(1, 2, 3)
	clone := seq.Clone()

	s.NotSame(seq, clone)
	s.assertItems([]int{1, 2, 3}, clone)

	clone.Append(4)
	s.Equal(3, seq.Len())
	s.Equal(int64(0), clone.Stats().Reads())
}

func (s *ParitySuite) TestPrintAndString() {
	seq := s.newSeq(1, 2, 3)

	var sb strings.Builder
	s.Require().NoError(seq.Print(&sb))

	switch s.kind {
	case KindArray:
		s.Equal("1 2 3\n", sb.String())
	case KindList:
		s.Equal("1 -> 2 -> 3\n", sb.String())
	}
	s.Equal("[1 2 3]", seq.String())
}

func (s *ParitySuite) TestStatistics() {
	seq := s.newSeq(1, 2, 3)

	_, _ = seq.Get(0)
	_, _ = seq.First()
	seq.Append(4)
	_, _ = seq.Set(0, 10)
	_ = seq.AppendImmutable(5)
	_, _ = seq.Get(42)

	stats := seq.Stats()
	s.Equal(int64(2), stats.Reads())
	s.Equal(int64(2), stats.Mutations())
	s.Equal(int64(1), stats.PersistentOps())
	s.Equal(int64(1), stats.Failures())
	s.Equal(int64(4), stats.MaxLength())

	summary := stats.Summary()
	s.Equal(int64(1), summary.Failures)
	s.InDelta(1.0/6.0, summary.FailureRate, 1e-9)
}

type wrongWriter struct{}

func (wrongWriter) Write([]byte) (int, error) {
	return 0, stderrors.New("disk full")
}

func (s *ParitySuite) TestPrintPropagatesWriterError() {
	err := s.newSeq(1).Print(wrongWriter{})
	s.Error(err)
}

// cell is an interface element whose implementations carry mutable state.
type cell interface {
	Clone() cell
}

type counterCell struct{ hits []int }

func (c *counterCell) Clone() cell {
	return &counterCell{hits: append([]int(nil), c.hits...)}
}

func (s *ParitySuite) TestPersistentOpsCloneInterfaceElements() {
	seq, err := New[cell](s.kind, []cell{&counterCell{hits: []int{1}}, nil})
	s.Require().NoError(err)

	hits := func(seq Sequence[cell], index int) []int {
		s.T().Helper()
		v, err := seq.Get(index)
		s.Require().NoError(err)
		return v.(*counterCell).hits
	}

	appended := seq.AppendImmutable(&counterCell{hits: []int{2}})
	clone := seq.Clone()
	sub, err := seq.Subsequence(0, 0)
	s.Require().NoError(err)
	joined, err := seq.ConcatImmutable(seq)
	s.Require().NoError(err)

	for _, derived := range []Sequence[cell]{appended, clone, sub, joined} {
		hits(derived, 0)[0] = 99
		s.Equal([]int{1}, hits(seq, 0))
	}

	s.Equal([]int{1}, hits(joined, 2))
	v, err := clone.Get(1)
	s.Require().NoError(err)
	s.Nil(v)
}
