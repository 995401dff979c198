package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a sample script.
type scriptStep struct {
	Action string   `json:"action"`
	Time   float64  `json:"time,omitempty"`
	Start  float64  `json:"start,omitempty"`
	End    *float64 `json:"end,omitempty"`
	DT     float64  `json:"dt,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Mode   string   `json:"mode,omitempty"`
}

// scriptFile is the top-level JSON structure of a sample script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script drives a GraphProcessor through a fixed sequence of playback
// operations. Hosts use it to reproduce a sampling session outside the game
// loop, for traces and regression tests.
//
// Actions: "play" (start, end; an omitted end means the graph length), "sample"
// (time), "advance" (dt, frames; frames defaults to 1), "stop" (mode "exit"
// or "skip") and "reset".
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON sample script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse sample script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse sample script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse sample script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SampleScript returns a script that samples each time in order.
func SampleScript(times ...float64) *Script {
	s := &Script{steps: make([]scriptStep, len(times))}
	for i, t := range times {
		s.steps[i] = scriptStep{Action: "sample", Time: t}
	}
	return s
}

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

func (st scriptStep) validate() error {
	switch st.Action {
	case "play", "sample", "reset":
		return nil
	case "advance":
		if st.Frames < 0 {
			return fmt.Errorf("advance: negative frames %d", st.Frames)
		}
		return nil
	case "stop":
		if _, err := parseStopMode(st.Mode); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// Run executes every step against p. It stops at the first step that
// returns an error.
func (s *Script) Run(p *GraphProcessor) error {
	for i, st := range s.steps {
		if err := st.apply(p); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func (st scriptStep) apply(p *GraphProcessor) error {
	switch st.Action {
	case "play":
		end := p.Length()
		if st.End != nil {
			end = *st.End
		}
		return p.Play(st.Start, end, nil)
	case "sample":
		p.Sample(st.Time)
	case "advance":
		frames := st.Frames
		if frames == 0 {
			frames = 1
		}
		for range frames {
			p.Advance(st.DT)
		}
	case "stop":
		mode, err := parseStopMode(st.Mode)
		if err != nil {
			return err
		}
		p.Stop(mode)
	case "reset":
		p.Reset()
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// parseStopMode maps "exit" (or empty) and "skip" to a StopMode.
func parseStopMode(s string) (StopMode, error) {
	switch s {
	case "", "exit":
		return StopExit, nil
	case "skip":
		return StopSkip, nil
	default:
		return StopExit, fmt.Errorf("unknown stop mode %q", s)
	}
}

// ParseWarp maps "once" and "loop" to a WarpCategory.
func ParseWarp(s string) (WarpCategory, error) {
	switch s {
	case "", "once":
		return WarpOnce, nil
	case "loop":
		return WarpLoop, nil
	default:
		return WarpOnce, fmt.Errorf("unknown warp category %q", s)
	}
}
