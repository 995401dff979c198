package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// phases returns "name Phase" pairs from trace output, skipping blackboard lines.
func phases(out string) []string {
	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] == "set" {
			continue
		}
		got = append(got, fields[2]+" "+fields[3])
	}
	return got
}

func TestTraceSamples(t *testing.T) {
	out, _, err := execute(t, "--length", "10", "--clip", "2:4:fade", "--samples", "3,7")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"group Enter", "group Update",
		"track Enter", "track Update",
		"fade Enter", "fade Update",
		"group Update", "track Update", "fade Update",
		"fade Update", "fade Exit",
		"group Update", "track Update",
	}, phases(out))
	assert.Contains(t, out, "local=1.000")
}

func TestTraceDefaultClipName(t *testing.T) {
	out, _, err := execute(t, "--clip", "0:1", "--samples", "0.5")
	require.NoError(t, err)
	assert.Contains(t, phases(out), "clip0 Enter")
}

func TestTraceTween(t *testing.T) {
	out, _, err := execute(t, "--length", "4", "--tween", "0:4:alpha:0:1:linear", "--samples", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "set   alpha = 0.5")
	assert.Contains(t, phases(out), "tween0 Enter")
}

func TestTraceScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps": [
		{"action": "play"},
		{"action": "advance", "dt": 1, "frames": 2},
		{"action": "stop", "mode": "exit"}
	]}`), 0o644))

	out, _, err := execute(t, "--length", "4", "--clip", "1:2:c", "--script", path)
	require.NoError(t, err)

	got := phases(out)
	assert.Contains(t, got, "c Enter")
	assert.Equal(t, "group Exit", got[len(got)-1])
}

func TestTraceLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"steps": [
		{"action": "play"},
		{"action": "advance", "dt": 1, "frames": 3}
	]}`), 0o644))

	out, _, err := execute(t, "--length", "2", "--warp", "loop", "--clip", "0.5:1:c", "--script", path)
	require.NoError(t, err)

	enters := 0
	for _, p := range phases(out) {
		if p == "c Enter" {
			enters++
		}
	}
	assert.Equal(t, 2, enters)
}

func TestTraceErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nothing to sample", []string{"--clip", "0:1"}, "nothing to sample"},
		{"bad clip", []string{"--clip", "x:1", "--samples", "1"}, `clip "x:1"`},
		{"clip arity", []string{"--clip", "1", "--samples", "1"}, "want start:length"},
		{"bad ease", []string{"--tween", "0:1:a:0:1:wobble", "--samples", "1"}, `unknown ease "wobble"`},
		{"bad warp", []string{"--warp", "bounce", "--samples", "1"}, `unknown warp category "bounce"`},
		{"invalid graph", []string{"--length=-1", "--samples", "1"}, "negative length"},
		{"missing script", []string{"--script", "/does/not/exist.json"}, "read script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTraceDebugLogging(t *testing.T) {
	_, errOut, err := execute(t, "--clip", "0:1", "--samples", "0.5", "--debug", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"timeline: transition"`)
	assert.Contains(t, errOut, `"msg":"timeline: graph"`)
}
