package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/health"
	"github.com/c360/seqstreams/metric"
	"github.com/c360/seqstreams/pkg/sequence"
)

// Info holds metadata about a named sequence
type Info struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Kind      sequence.Kind `json:"kind"`
	ValueKind ValueKind     `json:"value_kind"`
	Length    int           `json:"length"`
	CreatedAt time.Time     `json:"created_at"`

	Stats sequence.StatsSummary `json:"stats"`
}

type entry struct {
	id        uuid.UUID
	createdAt time.Time
	store     store
}

// Registry holds zero or one sequence per name.
// All methods are safe for concurrent use.
type Registry struct {
	entries    map[string]*entry
	logger     *slog.Logger
	metrics    *metric.Metrics
	listener   Listener
	thresholds health.Thresholds
	mu         sync.RWMutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records operations in the core metrics of registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(r *Registry) {
		if registry != nil {
			r.metrics = registry.CoreMetrics()
		}
	}
}

// WithListener subscribes listener to lifecycle events.
func WithListener(listener Listener) Option {
	return func(r *Registry) {
		r.listener = listener
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:    make(map[string]*entry),
		thresholds: health.DefaultThresholds(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "registry")
	return r
}

// Create adds an empty sequence under name.
func (r *Registry) Create(name string, kind sequence.Kind, valueKind ValueKind) error {
	return r.CreateFrom(name, kind, valueKind, nil)
}

// CreateFrom adds a sequence under name holding values.
func (r *Registry) CreateFrom(name string, kind sequence.Kind, valueKind ValueKind, values []Value) error {
	start := time.Now()
	err := r.insert("Create", name, func() (store, error) {
		return newStore(kind, valueKind, values, r.logger)
	})
	return r.done("create", start, Event{Type: EventCreated, Name: name}, err)
}

// Remove deletes the sequence stored under name.
func (r *Registry) Remove(name string) error {
	start := time.Now()

	r.mu.Lock()
	_, err := r.lookup("Remove", name)
	if err == nil {
		delete(r.entries, name)
		r.refreshCounts()
	}
	r.mu.Unlock()

	return r.done("remove", start, Event{Type: EventRemoved, Name: name}, err)
}

// Rename moves a sequence to a new name. The entry keeps its ID.
func (r *Registry) Rename(oldName, newName string) error {
	start := time.Now()

	r.mu.Lock()
	err := r.rename(oldName, newName)
	r.mu.Unlock()

	return r.done("rename", start, Event{Type: EventRenamed, Name: newName, Source: oldName}, err)
}

func (r *Registry) rename(oldName, newName string) error {
	e, err := r.lookup("Rename", oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if err := r.checkFree("Rename", newName); err != nil {
		return err
	}
	r.entries[newName] = e
	delete(r.entries, oldName)
	return nil
}

// Exists reports whether name holds a sequence.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names returns all sequence names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// sortedNames must be called with the lock held.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of named sequences.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Info returns metadata and statistics of a sequence.
func (r *Registry) Info(name string) (Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup("Info", name)
	if err != nil {
		return Info{}, err
	}
	return Info{
		ID:        e.id,
		Name:      name,
		Kind:      e.store.Kind(),
		ValueKind: e.store.ValueKind(),
		Length:    e.store.Len(),
		CreatedAt: e.createdAt,
		Stats:     e.store.Stats().Summary(),
	}, nil
}

// ValueKind returns the element kind of a sequence.
func (r *Registry) ValueKind(name string) (ValueKind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup("ValueKind", name)
	if err != nil {
		return 0, err
	}
	return e.store.ValueKind(), nil
}

// Get returns the element at index.
func (r *Registry) Get(name string, index int) (Value, error) {
	start := time.Now()

	r.mu.RLock()
	var v Value
	e, err := r.lookup("Get", name)
	if err == nil {
		v, err = e.store.Get(index)
	}
	r.mu.RUnlock()

	r.record("get", start, err)
	return v, err
}

// Length returns the number of elements of a sequence.
func (r *Registry) Length(name string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup("Length", name)
	if err != nil {
		return 0, err
	}
	return e.store.Len(), nil
}

// Format lists the elements of a sequence separated by ", ".
func (r *Registry) Format(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup("Format", name)
	if err != nil {
		return "", err
	}
	return e.store.Format(), nil
}

// Append adds v at the end of a sequence.
func (r *Registry) Append(name string, v Value) error {
	return r.change("Append", name, func(s store) error { return s.Append(v) })
}

// Prepend adds v at the front of a sequence.
func (r *Registry) Prepend(name string, v Value) error {
	return r.change("Prepend", name, func(s store) error { return s.Prepend(v) })
}

// InsertAt places v at index, 0 <= index <= length.
func (r *Registry) InsertAt(name string, index int, v Value) error {
	return r.change("InsertAt", name, func(s store) error { return s.InsertAt(index, v) })
}

// Set replaces the element at index.
func (r *Registry) Set(name string, index int, v Value) error {
	return r.change("Set", name, func(s store) error { return s.Set(index, v) })
}

// Concat appends the elements of source to target. Both must have the same
// backing and value kinds; target and source may be the same name.
func (r *Registry) Concat(target, source string) error {
	start := time.Now()

	r.mu.Lock()
	err := func() error {
		t, err := r.lookup("Concat", target)
		if err != nil {
			return err
		}
		s, err := r.lookup("Concat", source)
		if err != nil {
			return err
		}
		return t.store.Concat(s.store)
	}()
	r.mu.Unlock()

	return r.done("concat", start, Event{Type: EventChanged, Name: target, Source: source}, err)
}

// AppendImmutable stores a copy of original with v appended under newName.
func (r *Registry) AppendImmutable(original string, v Value, newName string) error {
	return r.derive("AppendImmutable", original, newName, func(s store) (store, error) {
		return s.AppendImmutable(v)
	})
}

// PrependImmutable stores a copy of original with v prepended under newName.
func (r *Registry) PrependImmutable(original string, v Value, newName string) error {
	return r.derive("PrependImmutable", original, newName, func(s store) (store, error) {
		return s.PrependImmutable(v)
	})
}

// InsertAtImmutable stores a copy of original with v inserted at index under newName.
func (r *Registry) InsertAtImmutable(original string, index int, v Value, newName string) error {
	return r.derive("InsertAtImmutable", original, newName, func(s store) (store, error) {
		return s.InsertAtImmutable(index, v)
	})
}

// SetImmutable stores a copy of original with the element at index replaced under newName.
func (r *Registry) SetImmutable(original string, index int, v Value, newName string) error {
	return r.derive("SetImmutable", original, newName, func(s store) (store, error) {
		return s.SetImmutable(index, v)
	})
}

// ConcatImmutable stores first followed by second under newName.
func (r *Registry) ConcatImmutable(first, second, newName string) error {
	start := time.Now()

	r.mu.Lock()
	err := func() error {
		a, err := r.lookup("ConcatImmutable", first)
		if err != nil {
			return err
		}
		b, err := r.lookup("ConcatImmutable", second)
		if err != nil {
			return err
		}
		if err := r.checkFree("ConcatImmutable", newName); err != nil {
			return err
		}
		out, err := a.store.ConcatImmutable(b.store)
		if err != nil {
			return err
		}
		r.put(newName, out)
		return nil
	}()
	r.mu.Unlock()

	return r.done("concat_immutable", start, Event{Type: EventCreated, Name: newName, Source: first}, err)
}

// Subsequence stores elements start through end of name under newName.
func (r *Registry) Subsequence(name string, start, end int, newName string) error {
	return r.derive("Subsequence", name, newName, func(s store) (store, error) {
		return s.Subsequence(start, end)
	})
}

// change applies fn to the sequence under name.
func (r *Registry) change(method, name string, fn func(store) error) error {
	start := time.Now()

	r.mu.Lock()
	e, err := r.lookup(method, name)
	if err == nil {
		err = fn(e.store)
	}
	r.mu.Unlock()

	return r.done(operationName(method), start, Event{Type: EventChanged, Name: name}, err)
}

// derive stores the result of fn applied to original under newName.
func (r *Registry) derive(method, original, newName string, fn func(store) (store, error)) error {
	start := time.Now()

	r.mu.Lock()
	err := func() error {
		e, err := r.lookup(method, original)
		if err != nil {
			return err
		}
		if err := r.checkFree(method, newName); err != nil {
			return err
		}
		out, err := fn(e.store)
		if err != nil {
			return err
		}
		r.put(newName, out)
		return nil
	}()
	r.mu.Unlock()

	return r.done(operationName(method), start,
		Event{Type: EventCreated, Name: newName, Source: original}, err)
}

// insert stores the result of build under a new name.
func (r *Registry) insert(method, name string, build func() (store, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkFree(method, name); err != nil {
		return err
	}
	s, err := build()
	if err != nil {
		return err
	}
	r.put(name, s)
	return nil
}

// put must be called with the write lock held.
func (r *Registry) put(name string, s store) {
	r.entries[name] = &entry{id: uuid.New(), createdAt: time.Now(), store: s}
	r.refreshCounts()
}

func (r *Registry) lookup(method, name string) (*entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrSequenceNotFound, "Registry", method,
			fmt.Sprintf("lookup %q", name))
	}
	return e, nil
}

func (r *Registry) checkFree(method, name string) error {
	if name == "" {
		return errors.InvalidArgument("Registry", method, "empty sequence name")
	}
	if _, exists := r.entries[name]; exists {
		return errors.WrapInvalid(errors.ErrSequenceExists, "Registry", method,
			fmt.Sprintf("reserve %q", name))
	}
	return nil
}

// refreshCounts must be called with the write lock held.
func (r *Registry) refreshCounts() {
	if r.metrics == nil {
		return
	}
	counts := make(map[[2]string]int)
	for _, kind := range []sequence.Kind{sequence.KindArray, sequence.KindList} {
		for _, vk := range []ValueKind{ValueInt, ValueDouble} {
			counts[[2]string{kind.String(), vk.String()}] = 0
		}
	}
	for _, e := range r.entries {
		counts[[2]string{e.store.Kind().String(), e.store.ValueKind().String()}]++
	}
	for key, n := range counts {
		r.metrics.RecordSequenceCount(key[0], key[1], n)
	}
}

func (r *Registry) record(operation string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordOperation(operation, err, time.Since(start))
	if err != nil {
		r.metrics.RecordError(operation, errors.Classify(err).String())
	}
}

// done records, logs and publishes the outcome of a registry operation.
// It must be called without the lock held.
func (r *Registry) done(operation string, start time.Time, ev Event, err error) error {
	r.record(operation, start, err)
	ev.Operation = operation

	if err != nil {
		r.logger.Warn("sequence operation failed",
			"operation", operation, "name", ev.Name, "error", err)
		ev.Type = EventError
		ev.Err = err
	} else {
		r.logger.Debug("sequence operation completed",
			"operation", operation, "name", ev.Name, "event", string(ev.Type))
		if r.metrics != nil {
			r.metrics.RecordEvent(string(ev.Type))
		}
	}

	if r.listener != nil {
		r.listener(ev)
	}
	return err
}

// operationName converts a method name into a metric label, e.g. InsertAtImmutable -> insert_at_immutable.
func operationName(method string) string {
	out := make([]byte, 0, len(method)+4)
	for i := 0; i < len(method); i++ {
		c := method[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
