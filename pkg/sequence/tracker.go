package sequence

// tracker carries the options, statistics and metrics shared by both adapters.
type tracker[T any] struct {
	opts  *sequenceOptions[T]
	stats *Statistics
}

func newTracker[T any](opts *sequenceOptions[T], length int) tracker[T] {
	t := tracker[T]{opts: opts, stats: NewStatistics()}
	t.stats.ObserveLength(length)
	return t
}

// init gives a zero-value sequence default options and fresh statistics.
func (t *tracker[T]) init() {
	if t.opts == nil {
		t.opts = applyOptions[T]()
	}
	if t.stats == nil {
		t.stats = NewStatistics()
	}
}

func (t *tracker[T]) read() {
	t.init()
	t.stats.Read()
	if t.opts.metrics != nil {
		t.opts.metrics.recordRead()
	}
}

func (t *tracker[T]) mutated(length int) {
	t.init()
	t.stats.Mutation()
	t.stats.ObserveLength(length)
	if t.opts.metrics != nil {
		t.opts.metrics.recordMutation(length)
	}
}

// persisted is recorded on the receiver; length is the length of the result.
func (t *tracker[T]) persisted(length int) {
	t.init()
	t.stats.Persistent()
	if t.opts.metrics != nil {
		t.opts.metrics.recordPersistent(length)
	}
}

func (t *tracker[T]) fail(method string, err error) error {
	t.init()
	t.stats.Failure()
	if t.opts.metrics != nil {
		t.opts.metrics.recordError()
	}
	t.opts.logger.Debug("sequence operation rejected", "method", method, "error", err)
	return err
}

// Stats returns the always-on statistics of this sequence.
func (t *tracker[T]) Stats() *Statistics {
	t.init()
	return t.stats
}
