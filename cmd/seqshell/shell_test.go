package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/metric"
	"github.com/c360/seqstreams/registry"
)

func newTestShell(t *testing.T) (*Shell, *registry.Registry, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &bytes.Buffer{}

	var shell *Shell
	reg := registry.New(
		registry.WithLogger(logger),
		registry.WithListener(func(ev registry.Event) {
			if shell != nil {
				shell.notify(ev)
			}
		}),
	)
	shell = NewShell(reg, out, logger, "")
	return shell, reg, out
}

func runScript(t *testing.T, shell *Shell, script string) {
	t.Helper()
	require.NoError(t, shell.Run(context.Background(), strings.NewReader(script)))
}

func TestShell_Session(t *testing.T) {
	shell, reg, out := newTestShell(t)

	runScript(t, shell, `
create a array int 1 2 3
append a 4
prepend a 0
insert a 2 9
set a 0 7
get a 2
len a
sub a 1 3 b
concat-new a b c
list
remove c
quit
append a 5
`)

	want := strings.Join([]string{
		"a = [1, 2, 3]",
		"a = [1, 2, 3, 4]",
		"a = [0, 1, 2, 3, 4]",
		"a = [0, 1, 9, 2, 3, 4]",
		"a = [7, 1, 9, 2, 3, 4]",
		"9",
		"6",
		"b = [1, 9, 2]",
		"c = [7, 1, 9, 2, 3, 4, 1, 9, 2]",
		"a (array of int, length 6)",
		"b (array of int, length 3)",
		"c (array of int, length 9)",
		"removed c",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())

	// Nothing after quit runs
	n, err := reg.Length("a")
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestShell_PersistentCommandsKeepSource(t *testing.T) {
	shell, _, out := newTestShell(t)

	runScript(t, shell, `
create l list double 1.5 2
append-new l 3 l2
prepend-new l -1 l3
insert-new l 1 0.25 l4
set-new l 0 8 l5
concat l l2
show l
`)

	assert.Equal(t, strings.Join([]string{
		"l = [1.5, 2]",
		"l2 = [1.5, 2, 3]",
		"l3 = [-1, 1.5, 2]",
		"l4 = [1.5, 0.25, 2]",
		"l5 = [8, 2]",
		"l = [1.5, 2, 1.5, 2, 3]",
		"l = [1.5, 2, 1.5, 2, 3]",
	}, "\n")+"\n", out.String())
}

func TestShell_ErrorsDoNotStopTheShell(t *testing.T) {
	shell, _, out := newTestShell(t)

	runScript(t, shell, `
# comments and blank lines are ignored

bogus
append missing 1
create a array int
get a x
append a 1.5
get a 0
create a list int
len
append a 1
`)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], `unknown command "bogus"`)
	assert.Contains(t, lines[1], "sequence not found")
	assert.Equal(t, "a = []", lines[2])
	assert.Contains(t, lines[3], "not an integer")
	assert.Contains(t, lines[4], "parsing failed")
	assert.Contains(t, lines[5], "index out of range")
	assert.Contains(t, lines[6], "sequence already exists")
	assert.Contains(t, lines[7], "usage: len <name>")
	assert.Equal(t, "a = [1]", lines[8])
}

func TestShell_Execute(t *testing.T) {
	shell, _, _ := newTestShell(t)

	quit, err := shell.Execute("   ")
	assert.False(t, quit)
	assert.NoError(t, err)

	quit, err = shell.Execute("EXIT")
	assert.True(t, quit)
	assert.NoError(t, err)

	quit, err = shell.Execute("create a vector int")
	assert.False(t, quit)
	assert.True(t, errors.IsInvalid(err))
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, err = shell.Execute("create a array int 1 2")
	require.NoError(t, err)
	_, err = shell.Execute("sub a 1 0 b")
	assert.ErrorIs(t, err, errors.ErrOutOfRange)
}

func TestShell_WatchPrintsEvents(t *testing.T) {
	shell, _, out := newTestShell(t)

	runScript(t, shell, `
create quiet array int
watch on
create w array int
rename w v
append-new v 1 u
remove missing
watch off
remove u
`)

	output := out.String()
	assert.NotContains(t, output, "[created] create quiet")
	assert.Contains(t, output, "[created] create w\n")
	assert.Contains(t, output, "[renamed] rename v <- w\n")
	assert.Contains(t, output, "[created] append_immutable u <- v\n")
	assert.Contains(t, output, "[error] remove missing: ")
	assert.NotContains(t, output, "[removed]")
	assert.Contains(t, output, "removed u\n")

	_, err := shell.Execute("watch maybe")
	assert.True(t, errors.IsInvalid(err))
}

func TestShell_InfoAndHelp(t *testing.T) {
	shell, _, out := newTestShell(t)

	runScript(t, shell, "create a list int 1 2\nget a 1\ninfo a\n")
	assert.Contains(t, out.String(), `"name": "a"`)
	assert.Contains(t, out.String(), `"kind": "list"`)
	assert.Contains(t, out.String(), `"value_kind": "int"`)
	assert.Contains(t, out.String(), `"reads": 1`)

	out.Reset()
	runScript(t, shell, "help\n")
	for _, usage := range []string{"create <name>", "concat-new <first>", "sub <name> <start> <end> <new>", "watch <on|off>"} {
		assert.Contains(t, out.String(), usage)
	}

	out.Reset()
	runScript(t, shell, "get a 9\nhealth\n")
	assert.Contains(t, out.String(), `"component": "registry"`)
	assert.Contains(t, out.String(), `"status": "degraded"`)
	assert.Contains(t, out.String(), `"failures": 1`)

	out.Reset()
	runScript(t, shell, "remove a\nlist\n")
	assert.Equal(t, "removed a\nno sequences\n", out.String())
}

func TestShell_PromptAndCancellation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &bytes.Buffer{}
	shell := NewShell(registry.New(registry.WithLogger(logger)), out, logger, "> ")

	require.NoError(t, shell.Run(context.Background(), strings.NewReader("len missing\n")))
	assert.True(t, strings.HasPrefix(out.String(), "> error: "))

	// A reader that never delivers a line must not block cancellation
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewShell(registry.New(registry.WithLogger(logger)), io.Discard, logger, "").Run(ctx, reader)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not stop after cancel")
	}
}

func TestShell_HistoryAndEvents(t *testing.T) {
	shell, _, out := newTestShell(t)

	runScript(t, shell, `
create a   array int
append a 1
remove nope
`)
	out.Reset()

	_, err := shell.Execute("history")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"   1  create a array int",
		"   2  append a 1",
		"   3  remove nope",
		"   4  history",
	}, "\n")+"\n", out.String())

	out.Reset()
	_, err = shell.Execute("history 2")
	require.NoError(t, err)
	assert.Equal(t, "   4  history\n   5  history 2\n", out.String())

	out.Reset()
	_, err = shell.Execute("events 2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[changed] append a", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[error] remove nope: "))

	_, err = shell.Execute("events 0")
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func TestShell_Metrics(t *testing.T) {
	shell, _, out := newTestShell(t)

	_, err := shell.Execute("metrics")
	assert.ErrorIs(t, err, errors.ErrNotStarted)

	metrics := metric.NewMetricsRegistry()
	metrics.CoreMetrics().RecordEvent("created")
	shell.SetMetrics(metrics)

	_, err = shell.Execute("metrics seqstreams_registry_events")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `seqstreams_registry_events_total{event="created"} 1`)
	assert.NotContains(t, out.String(), "go_goroutines")
}
