// Package seqstreams provides generic ordered sequences with a single
// contract over two interchangeable storage strategies, plus a registry of
// named sequences and an interactive shell on top of it.
//
// # Layers
//
//	┌─────────────────────────────────────┐
//	│         cmd/seqshell                │  REPL, flags, config seeding,
//	│                                     │  metrics server
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│         registry                    │  Named int/double sequences,
//	│   (create, route, derive, events)   │  listeners, core metrics
//	└─────────────────────────────────────┘
//	           ↓ stores
//	┌─────────────────────────────────────┐
//	│         pkg/sequence                │  Sequence[T] over array or
//	│  (mutating + persistent operations) │  list, statistics
//	└─────────────────────────────────────┘
//	           ↓ backed by
//	┌─────────────────────────────────────┐
//	│   pkg/dynarray    pkg/linkedlist    │  Positional stores,
//	│          pkg/cloner                 │  deep-copy hook
//	└─────────────────────────────────────┘
//
// Supporting packages: errors (classified errors and sentinels), config
// (layered JSON/YAML configuration with environment overrides) and metric
// (Prometheus registry and HTTP server).
//
// # Sequences
//
// A Sequence[T] is a zero-indexed ordered collection. Mutating operations
// change the receiver and return it so calls chain; persistent operations
// (the *Immutable methods, Subsequence, Clone) leave the receiver untouched
// and return an independent result of the same kind.
//
//	seq := sequence.NewArraySequenceFrom([]int{1, 2, 3})
//	seq.Append(4).Prepend(0)                  // [0 1 2 3 4]
//	next, _ := seq.SetImmutable(0, 99)        // seq unchanged
//	part, _ := seq.Subsequence(1, 3)          // [1 2 3]
//
// Indices are checked: an out-of-range index returns an error wrapping
// errors.ErrOutOfRange and leaves the receiver unchanged. Concatenating
// sequences of different kinds returns errors.ErrTypeMismatch.
//
// # Registry
//
// The registry maps names to integer or double sequences of either kind.
// Persistent operations store their result under a new name:
//
//	reg := registry.New()
//	_ = reg.CreateFrom("a", sequence.KindList, registry.ValueInt,
//	        []registry.Value{registry.IntValue(1), registry.IntValue(2)})
//	_ = reg.AppendImmutable("a", registry.IntValue(3), "b")
//	s, _ := reg.Format("b")                   // "1, 2, 3"
//
// # Shell
//
//	$ seqshell --config configs/sequences.yaml --metrics-port 9090
//	seq> create xs array int 1 2 3
//	xs = [1, 2, 3]
//	seq> sub xs 0 1 head
//	head = [1, 2]
package seqstreams
