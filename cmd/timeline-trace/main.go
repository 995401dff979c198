// Command timeline-trace builds a timeline graph from flags, samples it and
// prints every lifecycle call. It is meant for checking the order in which
// clips fire without running a game.
//
// Usage:
//
//	timeline-trace --length 10 --clip 2:4:fade --samples 0,3,7,0
//	timeline-trace --length 5 --warp loop --tween 0:5:alpha:0:1:inOutQuad --script steps.json
//
// A script is a JSON file of the form:
//
//	{"steps": [{"action": "play"}, {"action": "advance", "dt": 0.5, "frames": 10}]}
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/timeline"
	"github.com/spf13/cobra"
)

type options struct {
	length    float64
	warp      string
	clips     []string
	tweens    []string
	samples   []float64
	script    string
	logLevel  string
	logFormat string
	debug     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "timeline-trace",
		Short: "Sample a timeline graph and print its lifecycle calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}
	f := cmd.Flags()
	f.Float64Var(&opts.length, "length", 10, "graph length in seconds")
	f.StringVar(&opts.warp, "warp", "once", "end of playback behavior: once or loop")
	f.StringArrayVar(&opts.clips, "clip", nil, "clip as start:length[:name] (repeatable)")
	f.StringArrayVar(&opts.tweens, "tween", nil, "tween clip as start:length:key:from:to[:ease] (repeatable)")
	f.Float64SliceVar(&opts.samples, "samples", nil, "times to sample, in order")
	f.StringVar(&opts.script, "script", "", "JSON sample script to run instead of --samples")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&opts.debug, "debug", false, "log every transition at debug level")
	return cmd
}

func run(opts *options, out, errOut io.Writer) error {
	logger := newLogger(opts.logLevel, opts.logFormat, errOut)

	graph, err := buildGraph(opts)
	if err != nil {
		return err
	}
	script, err := loadScript(opts)
	if err != nil {
		return err
	}

	reg := timeline.NewRegistry()
	timeline.RegisterTween(reg)

	tw := &traceWriter{w: out}
	p, err := timeline.NewGraphProcessor(graph, timeline.Config{
		Registry: reg,
		Logger:   logger,
		Sink:     timeline.SinkFunc(tw.lifecycle),
		Debug:    opts.debug,
	})
	if err != nil {
		return err
	}
	defer p.Dispose()

	if len(opts.tweens) > 0 {
		timeline.Subscribe(p.Events(), timeline.BlackboardChanged, tw.blackboard)
	}
	if opts.debug {
		p.DebugDump()
	}

	logger.Debug("sampling graph", "length", graph.Length, "warp", graph.Warp.String(), "steps", script.Len())
	if err := script.Run(p); err != nil {
		return err
	}
	return tw.err
}

// newLogger creates a slog.Logger writing to outW.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}

func loadScript(opts *options) (*timeline.Script, error) {
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		return timeline.LoadScript(data)
	}
	if len(opts.samples) == 0 {
		return nil, errors.New("nothing to sample: pass --samples or --script")
	}
	return timeline.SampleScript(opts.samples...), nil
}

// buildGraph turns the clip flags into a one-group, one-track graph.
func buildGraph(opts *options) (*timeline.TimelineGraph, error) {
	warp, err := timeline.ParseWarp(opts.warp)
	if err != nil {
		return nil, err
	}
	track := &timeline.Track{Name: "track"}
	for i, s := range opts.clips {
		c, err := parseClip(s, i)
		if err != nil {
			return nil, err
		}
		track.Clips = append(track.Clips, c)
	}
	for i, s := range opts.tweens {
		c, err := parseTween(s, i)
		if err != nil {
			return nil, err
		}
		track.Clips = append(track.Clips, c)
	}
	return &timeline.TimelineGraph{
		Name:   "trace",
		Length: opts.length,
		Warp:   warp,
		Groups: []timeline.GroupModel{&timeline.Group{
			Name:   "group",
			Tracks: []timeline.TrackModel{track},
		}},
	}, nil
}

func parseClip(s string, index int) (*timeline.Clip, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("clip %q: want start:length[:name]", s)
	}
	start, length, err := parseSpan(parts[0], parts[1])
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", s, err)
	}
	name := fmt.Sprintf("clip%d", index)
	if len(parts) == 3 && parts[2] != "" {
		name = parts[2]
	}
	return &timeline.Clip{Name: name, StartTime: start, Length: length}, nil
}

func parseTween(s string, index int) (*timeline.TweenClip, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 5 || len(parts) > 6 {
		return nil, fmt.Errorf("tween %q: want start:length:key:from:to[:ease]", s)
	}
	start, length, err := parseSpan(parts[0], parts[1])
	if err != nil {
		return nil, fmt.Errorf("tween %q: %w", s, err)
	}
	from, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, fmt.Errorf("tween %q: from: %w", s, err)
	}
	to, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, fmt.Errorf("tween %q: to: %w", s, err)
	}
	c := &timeline.TweenClip{
		Clip: timeline.Clip{Name: fmt.Sprintf("tween%d", index), StartTime: start, Length: length},
		Key:  parts[2],
		From: from,
		To:   to,
	}
	if len(parts) == 6 {
		fn, ok := timeline.EaseByName(parts[5])
		if !ok {
			return nil, fmt.Errorf("tween %q: unknown ease %q", s, parts[5])
		}
		c.Ease = fn
	}
	return c, nil
}

func parseSpan(startStr, lengthStr string) (start, length float64, err error) {
	if start, err = strconv.ParseFloat(startStr, 64); err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	if length, err = strconv.ParseFloat(lengthStr, 64); err != nil {
		return 0, 0, fmt.Errorf("length: %w", err)
	}
	return start, length, nil
}

// traceWriter prints one line per lifecycle call and blackboard change. The
// first write error is kept and reported when the run ends.
type traceWriter struct {
	w   io.Writer
	err error
}

func (t *traceWriter) lifecycle(e timeline.LifecycleEvent) {
	t.printf("%8.3f  %-5s %-12s %-12s local=%.3f\n",
		e.Outer.CurrentTime, e.Kind, e.Name, e.Phase, e.Inner.CurrentTime)
}

func (t *traceWriter) blackboard(c timeline.BlackboardChange) {
	if c.Deleted {
		t.printf("          set   %s deleted\n", c.Key)
		return
	}
	t.printf("          set   %s = %v\n", c.Key, c.Value)
}

func (t *traceWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}
