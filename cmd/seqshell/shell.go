package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/metric"
	"github.com/c360/seqstreams/pkg/buffer"
	"github.com/c360/seqstreams/pkg/sequence"
	"github.com/c360/seqstreams/registry"
)

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(args []string) error
}

// Shell reads commands line by line and applies them to a registry.
type Shell struct {
	reg      *registry.Registry
	out      io.Writer
	logger   *slog.Logger
	prompt   string
	watching bool
	commands map[string]command
	history  *buffer.Ring[string]
	events   *buffer.Ring[registry.Event]
	metrics  *metric.MetricsRegistry
}

const (
	historySize = 100
	eventsSize  = 50
)

// NewShell creates a shell over reg writing results to out.
func NewShell(reg *registry.Registry, out io.Writer, logger *slog.Logger, prompt string) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Shell{
		reg:     reg,
		out:     out,
		logger:  logger.With("component", "shell"),
		prompt:  prompt,
		history: buffer.NewRing[string](historySize),
		events:  buffer.NewRing[registry.Event](eventsSize),
	}
	s.commands = s.commandTable()
	return s
}

// SetMetrics enables the metrics command.
func (s *Shell) SetMetrics(metrics *metric.MetricsRegistry) {
	s.metrics = metrics
}

func (s *Shell) commandTable() map[string]command {
	return map[string]command{
		"help": {"help", "list commands", 0, 0, s.help},
		"quit": {"quit", "leave the shell", 0, 0, nil},
		"exit": {"exit", "leave the shell", 0, 0, nil},

		"create": {"create <name> <array|list> <int|double> [values...]", "create a sequence", 3, -1, s.create},
		"remove": {"remove <name>", "remove a sequence", 1, 1, s.remove},
		"rename": {"rename <old> <new>", "rename a sequence", 2, 2, s.rename},
		"list":   {"list", "list sequences", 0, 0, s.list},
		"show":   {"show <name>", "print a sequence", 1, 1, s.show},
		"get":    {"get <name> <index>", "print one element", 2, 2, s.get},
		"len":    {"len <name>", "print the length", 1, 1, s.length},
		"info":   {"info <name>", "print metadata and statistics as JSON", 1, 1, s.info},
		"health": {"health", "print per-sequence health as JSON", 0, 0, s.health},

		"watch":   {"watch <on|off>", "print registry events as they happen", 1, 1, s.watch},
		"events":  {"events [n]", "print recent registry events", 0, 1, s.printEvents},
		"history": {"history [n]", "print recent commands", 0, 1, s.printHistory},
		"metrics": {"metrics [prefix]", "print Prometheus metrics (default prefix seqstreams_)", 0, 1, s.printMetrics},

		"append":  {"append <name> <value>", "add at the end", 2, 2, s.appendValue},
		"prepend": {"prepend <name> <value>", "add at the front", 2, 2, s.prependValue},
		"insert":  {"insert <name> <index> <value>", "insert before index", 3, 3, s.insert},
		"set":     {"set <name> <index> <value>", "replace the element at index", 3, 3, s.set},
		"concat":  {"concat <target> <source>", "append source to target", 2, 2, s.concat},

		"append-new":  {"append-new <name> <value> <new>", "append into a new sequence", 3, 3, s.appendNew},
		"prepend-new": {"prepend-new <name> <value> <new>", "prepend into a new sequence", 3, 3, s.prependNew},
		"insert-new":  {"insert-new <name> <index> <value> <new>", "insert into a new sequence", 4, 4, s.insertNew},
		"set-new":     {"set-new <name> <index> <value> <new>", "replace into a new sequence", 4, 4, s.setNew},
		"concat-new":  {"concat-new <first> <second> <new>", "concatenate into a new sequence", 3, 3, s.concatNew},
		"sub":         {"sub <name> <start> <end> <new>", "copy the inclusive range into a new sequence", 4, 4, s.sub},
	}
}

// Run executes commands from in until quit, end of input or ctx cancellation.
// Command errors are printed and do not stop the shell.
//
// Lines are read on a separate goroutine. When Run returns before end of input,
// that goroutine stays blocked in Read until in yields a line, EOF or an error.
// Callers that embed the shell should close in once Run returns.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		s.printPrompt()
		select {
		case <-ctx.Done():
			s.logger.Debug("Shell cancelled")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return errors.WrapTransient(err, "Shell", "Run", "read input")
				}
				return nil
			}
			quit, err := s.Execute(line)
			if err != nil {
				_, _ = fmt.Fprintf(s.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line. It reports whether the shell should stop.
func (s *Shell) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}

	s.history.Write(strings.Join(fields, " "))

	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := s.commands[name]
	if !ok {
		return false, errors.InvalidArgument("Shell", "Execute",
			fmt.Sprintf("unknown command %q (try help)", name))
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return false, errors.InvalidArgument("Shell", "Execute", "usage: "+cmd.usage)
	}
	if cmd.run == nil {
		return true, nil
	}

	s.logger.Debug("Executing command", "command", name, "args", len(args))
	return false, cmd.run(args)
}

func (s *Shell) printPrompt() {
	if s.prompt != "" {
		_, _ = io.WriteString(s.out, s.prompt)
	}
}

// notify is the registry listener; it runs on the goroutine that issued the command.
func (s *Shell) notify(ev registry.Event) {
	s.events.Write(ev)
	if s.watching {
		s.printEvent(ev)
	}
}

func (s *Shell) printEvent(ev registry.Event) {
	switch {
	case ev.Err != nil:
		_, _ = fmt.Fprintf(s.out, "[%s] %s %s: %v\n", ev.Type, ev.Operation, ev.Name, ev.Err)
	case ev.Source != "":
		_, _ = fmt.Fprintf(s.out, "[%s] %s %s <- %s\n", ev.Type, ev.Operation, ev.Name, ev.Source)
	default:
		_, _ = fmt.Fprintf(s.out, "[%s] %s %s\n", ev.Type, ev.Operation, ev.Name)
	}
}

func (s *Shell) help(_ []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := s.commands[name]
		_, _ = fmt.Fprintf(s.out, "  %-42s %s\n", cmd.usage, cmd.summary)
	}
	return nil
}

func (s *Shell) create(args []string) error {
	kind, err := sequence.ParseKind(args[1])
	if err != nil {
		return err
	}
	valueKind, err := registry.ParseValueKind(args[2])
	if err != nil {
		return err
	}

	values := make([]registry.Value, 0, len(args)-3)
	for _, text := range args[3:] {
		v, err := registry.ParseValue(valueKind, text)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	if err := s.reg.CreateFrom(args[0], kind, valueKind, values); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) remove(args []string) error {
	if err := s.reg.Remove(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "removed %s\n", args[0])
	return nil
}

func (s *Shell) rename(args []string) error {
	if err := s.reg.Rename(args[0], args[1]); err != nil {
		return err
	}
	return s.show(args[1:2])
}

func (s *Shell) list(_ []string) error {
	names := s.reg.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(s.out, "no sequences")
		return nil
	}
	for _, name := range names {
		info, err := s.reg.Info(name)
		if err != nil {
			// removed concurrently
			continue
		}
		_, _ = fmt.Fprintf(s.out, "%s (%s of %s, length %d)\n", name, info.Kind, info.ValueKind, info.Length)
	}
	return nil
}

func (s *Shell) show(args []string) error {
	text, err := s.reg.Format(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "%s = [%s]\n", args[0], text)
	return nil
}

func (s *Shell) get(args []string) error {
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	v, err := s.reg.Get(args[0], index)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(s.out, v)
	return nil
}

func (s *Shell) length(args []string) error {
	n, err := s.reg.Length(args[0])
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(s.out, n)
	return nil
}

func (s *Shell) info(args []string) error {
	info, err := s.reg.Info(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return errors.WrapFatal(err, "Shell", "info", "encode info")
	}
	_, _ = fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *Shell) health(_ []string) error {
	data, err := json.MarshalIndent(s.reg.Health(), "", "  ")
	if err != nil {
		return errors.WrapFatal(err, "Shell", "health", "encode status")
	}
	_, _ = fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *Shell) printHistory(args []string) error {
	n, err := optionalCount(args)
	if err != nil {
		return err
	}
	entries := s.history.Last(n)
	// The history command itself is the newest entry
	first := s.history.Size() - len(entries) + 1
	for i, line := range entries {
		_, _ = fmt.Fprintf(s.out, "%4d  %s\n", first+i, line)
	}
	return nil
}

func (s *Shell) printEvents(args []string) error {
	n, err := optionalCount(args)
	if err != nil {
		return err
	}
	for _, ev := range s.events.Last(n) {
		s.printEvent(ev)
	}
	return nil
}

func (s *Shell) printMetrics(args []string) error {
	if s.metrics == nil {
		return errors.WrapInvalid(errors.ErrNotStarted, "Shell", "metrics", "metrics registry not configured")
	}
	prefix := "seqstreams_"
	if len(args) == 1 {
		prefix = args[0]
	}
	return s.metrics.WriteText(s.out, prefix)
}

func (s *Shell) watch(args []string) error {
	switch strings.ToLower(args[0]) {
	case "on":
		s.watching = true
	case "off":
		s.watching = false
	default:
		return errors.InvalidArgument("Shell", "watch", "expected on or off")
	}
	return nil
}

func (s *Shell) appendValue(args []string) error {
	v, err := s.value(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.reg.Append(args[0], v); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) prependValue(args []string) error {
	v, err := s.value(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.reg.Prepend(args[0], v); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) insert(args []string) error {
	index, v, err := s.indexedValue(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := s.reg.InsertAt(args[0], index, v); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) set(args []string) error {
	index, v, err := s.indexedValue(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := s.reg.Set(args[0], index, v); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) concat(args []string) error {
	if err := s.reg.Concat(args[0], args[1]); err != nil {
		return err
	}
	return s.show(args[:1])
}

func (s *Shell) appendNew(args []string) error {
	v, err := s.value(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.reg.AppendImmutable(args[0], v, args[2]); err != nil {
		return err
	}
	return s.show(args[2:3])
}

func (s *Shell) prependNew(args []string) error {
	v, err := s.value(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.reg.PrependImmutable(args[0], v, args[2]); err != nil {
		return err
	}
	return s.show(args[2:3])
}

func (s *Shell) insertNew(args []string) error {
	index, v, err := s.indexedValue(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := s.reg.InsertAtImmutable(args[0], index, v, args[3]); err != nil {
		return err
	}
	return s.show(args[3:4])
}

func (s *Shell) setNew(args []string) error {
	index, v, err := s.indexedValue(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	if err := s.reg.SetImmutable(args[0], index, v, args[3]); err != nil {
		return err
	}
	return s.show(args[3:4])
}

func (s *Shell) concatNew(args []string) error {
	if err := s.reg.ConcatImmutable(args[0], args[1], args[2]); err != nil {
		return err
	}
	return s.show(args[2:3])
}

func (s *Shell) sub(args []string) error {
	start, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	end, err := parseIndex(args[2])
	if err != nil {
		return err
	}
	if err := s.reg.Subsequence(args[0], start, end, args[3]); err != nil {
		return err
	}
	return s.show(args[3:4])
}

// value parses text with the element type of the named sequence.
func (s *Shell) value(name, text string) (registry.Value, error) {
	valueKind, err := s.reg.ValueKind(name)
	if err != nil {
		return registry.Value{}, err
	}
	return registry.ParseValue(valueKind, text)
}

func (s *Shell) indexedValue(name, indexText, valueText string) (int, registry.Value, error) {
	index, err := parseIndex(indexText)
	if err != nil {
		return 0, registry.Value{}, err
	}
	v, err := s.value(name, valueText)
	if err != nil {
		return 0, registry.Value{}, err
	}
	return index, v, nil
}

// optionalCount parses an optional positive count; no argument means all.
func optionalCount(args []string) (int, error) {
	if len(args) == 0 {
		return -1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, errors.InvalidArgument("Shell", "optionalCount",
			fmt.Sprintf("count %q must be a positive integer", args[0]))
	}
	return n, nil
}

func parseIndex(text string) (int, error) {
	index, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.WrapInvalid(errors.ErrParsingFailed, "Shell", "parseIndex",
			fmt.Sprintf("index %q is not an integer", text))
	}
	return index, nil
}
