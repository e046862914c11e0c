package registry

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/pkg/sequence"
)

// store hides the element type of a named sequence behind Value.
type store interface {
	Kind() sequence.Kind
	ValueKind() ValueKind
	Len() int
	Stats() *sequence.Statistics

	Get(index int) (Value, error)
	Format() string

	Append(v Value) error
	Prepend(v Value) error
	InsertAt(index int, v Value) error
	Set(index int, v Value) error
	Concat(other store) error

	AppendImmutable(v Value) (store, error)
	PrependImmutable(v Value) (store, error)
	InsertAtImmutable(index int, v Value) (store, error)
	SetImmutable(index int, v Value) (store, error)
	ConcatImmutable(other store) (store, error)
	Subsequence(start, end int) (store, error)
}

type typedStore[T number] struct {
	seq       sequence.Sequence[T]
	valueKind ValueKind
}

func newStore(kind sequence.Kind, valueKind ValueKind, values []Value, logger *slog.Logger) (store, error) {
	switch valueKind {
	case ValueInt:
		return buildStore[int64](kind, valueKind, values, logger)
	case ValueDouble:
		return buildStore[float64](kind, valueKind, values, logger)
	default:
		return nil, errors.InvalidArgument("Registry", "newStore", fmt.Sprintf("unknown value kind %s", valueKind))
	}
}

func buildStore[T number](kind sequence.Kind, valueKind ValueKind, values []Value, logger *slog.Logger) (store, error) {
	items := make([]T, 0, len(values))
	for _, v := range values {
		x, err := unwrap[T](v, valueKind)
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}

	seq, err := sequence.New(kind, items, sequence.WithLogger[T](logger))
	if err != nil {
		return nil, err
	}
	return &typedStore[T]{seq: seq, valueKind: valueKind}, nil
}

func (s *typedStore[T]) derive(seq sequence.Sequence[T]) store {
	return &typedStore[T]{seq: seq, valueKind: s.valueKind}
}

// peer returns other's sequence when it holds the same element type.
func (s *typedStore[T]) peer(other store) (sequence.Sequence[T], error) {
	o, ok := other.(*typedStore[T])
	if !ok || o.valueKind != s.valueKind {
		return nil, errors.WrapInvalid(errors.ErrTypeMismatch, "Registry", "Concat",
			fmt.Sprintf("cannot concat %s sequence onto %s sequence", other.ValueKind(), s.valueKind))
	}
	return o.seq, nil
}

func (s *typedStore[T]) Kind() sequence.Kind         { return s.seq.Kind() }
func (s *typedStore[T]) ValueKind() ValueKind        { return s.valueKind }
func (s *typedStore[T]) Len() int                    { return s.seq.Len() }
func (s *typedStore[T]) Stats() *sequence.Statistics { return s.seq.Stats() }

func (s *typedStore[T]) Get(index int) (Value, error) {
	x, err := s.seq.Get(index)
	if err != nil {
		return Value{}, err
	}
	return wrap(x, s.valueKind), nil
}

// Format lists the elements separated by ", ".
func (s *typedStore[T]) Format() string {
	items := s.seq.Items()
	parts := make([]string, len(items))
	for i, x := range items {
		parts[i] = wrap(x, s.valueKind).String()
	}
	return strings.Join(parts, ", ")
}

func (s *typedStore[T]) Append(v Value) error {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return err
	}
	s.seq.Append(x)
	return nil
}

func (s *typedStore[T]) Prepend(v Value) error {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return err
	}
	s.seq.Prepend(x)
	return nil
}

func (s *typedStore[T]) InsertAt(index int, v Value) error {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return err
	}
	_, err = s.seq.InsertAt(x, index)
	return err
}

func (s *typedStore[T]) Set(index int, v Value) error {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return err
	}
	_, err = s.seq.Set(index, x)
	return err
}

func (s *typedStore[T]) Concat(other store) error {
	o, err := s.peer(other)
	if err != nil {
		return err
	}
	_, err = s.seq.Concat(o)
	return err
}

func (s *typedStore[T]) AppendImmutable(v Value) (store, error) {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return nil, err
	}
	return s.derive(s.seq.AppendImmutable(x)), nil
}

func (s *typedStore[T]) PrependImmutable(v Value) (store, error) {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return nil, err
	}
	return s.derive(s.seq.PrependImmutable(x)), nil
}

func (s *typedStore[T]) InsertAtImmutable(index int, v Value) (store, error) {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return nil, err
	}
	out, err := s.seq.InsertAtImmutable(x, index)
	if err != nil {
		return nil, err
	}
	return s.derive(out), nil
}

func (s *typedStore[T]) SetImmutable(index int, v Value) (store, error) {
	x, err := unwrap[T](v, s.valueKind)
	if err != nil {
		return nil, err
	}
	out, err := s.seq.SetImmutable(index, x)
	if err != nil {
		return nil, err
	}
	return s.derive(out), nil
}

func (s *typedStore[T]) ConcatImmutable(other store) (store, error) {
	o, err := s.peer(other)
	if err != nil {
		return nil, err
	}
	out, err := s.seq.ConcatImmutable(o)
	if err != nil {
		return nil, err
	}
	return s.derive(out), nil
}

func (s *typedStore[T]) Subsequence(start, end int) (store, error) {
	out, err := s.seq.Subsequence(start, end)
	if err != nil {
		return nil, err
	}
	return s.derive(out), nil
}
