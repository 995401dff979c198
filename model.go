package timeline

import (
	"errors"
	"fmt"
)

// Base kind keys. Custom model types return a dotted refinement of one of
// these from Kind (for example "clip.tween") so the Registry can fall back to
// the less specific binding.
const (
	GroupKind = "group"
	TrackKind = "track"
	ClipKind  = "clip"
)

// ClipModel is implemented by every authored clip type. Embed Clip to get
// ClipBase for free and override Kind to bind a behavior.
type ClipModel interface {
	Kind() string
	ClipBase() *Clip
}

// TrackModel is implemented by every authored track type.
type TrackModel interface {
	Kind() string
	TrackBase() *Track
}

// GroupModel is implemented by every authored group type.
type GroupModel interface {
	Kind() string
	GroupBase() *Group
}

// Clip is the authored data for a time-bounded leaf. EndTime is derived and
// never stored.
type Clip struct {
	Name      string
	StartTime float64
	Length    float64
	Disabled  bool
}

// Kind returns ClipKind.
func (c *Clip) Kind() string { return ClipKind }

// ClipBase returns c.
func (c *Clip) ClipBase() *Clip { return c }

// EndTime returns StartTime + Length.
func (c *Clip) EndTime() float64 { return c.StartTime + c.Length }

// Track is an ordered list of clips. At runtime a track spans the whole graph.
type Track struct {
	Name     string
	Disabled bool
	Clips    []ClipModel
}

// Kind returns TrackKind.
func (t *Track) Kind() string { return TrackKind }

// TrackBase returns t.
func (t *Track) TrackBase() *Track { return t }

// Group is an ordered list of tracks. At runtime a group spans the whole graph.
type Group struct {
	Name     string
	Disabled bool
	Tracks   []TrackModel
}

// Kind returns GroupKind.
func (g *Group) Kind() string { return GroupKind }

// GroupBase returns g.
func (g *Group) GroupBase() *Group { return g }

// TimelineGraph is the authored root. It is treated as immutable once handed
// to NewGraphProcessor; the sampling core never writes to it.
type TimelineGraph struct {
	Name   string
	Length float64
	Warp   WarpCategory
	Groups []GroupModel
}

// Validate reports structural problems in the graph: negative or non-finite
// lengths, clips starting before zero or at a non-finite time and nil
// children. All problems are returned together.
func (g *TimelineGraph) Validate() error {
	if g == nil {
		return errors.New("timeline: nil graph")
	}
	var errs []error
	switch {
	case !finite(g.Length):
		errs = append(errs, fmt.Errorf("graph %q: non-finite length %v", g.Name, g.Length))
	case g.Length < 0:
		errs = append(errs, fmt.Errorf("graph %q: negative length %v", g.Name, g.Length))
	}
	for gi, gm := range g.Groups {
		if gm == nil || gm.GroupBase() == nil {
			errs = append(errs, fmt.Errorf("group %d: nil", gi))
			continue
		}
		for ti, tm := range gm.GroupBase().Tracks {
			if tm == nil || tm.TrackBase() == nil {
				errs = append(errs, fmt.Errorf("group %d track %d: nil", gi, ti))
				continue
			}
			for ci, cm := range tm.TrackBase().Clips {
				if cm == nil || cm.ClipBase() == nil {
					errs = append(errs, fmt.Errorf("group %d track %d clip %d: nil", gi, ti, ci))
					continue
				}
				c := cm.ClipBase()
				switch {
				case !finite(c.StartTime):
					errs = append(errs, fmt.Errorf("clip %q: non-finite start time %v", c.Name, c.StartTime))
				case c.StartTime < 0:
					errs = append(errs, fmt.Errorf("clip %q: negative start time %v", c.Name, c.StartTime))
				}
				switch {
				case !finite(c.Length):
					errs = append(errs, fmt.Errorf("clip %q: non-finite length %v", c.Name, c.Length))
				case c.Length < 0:
					errs = append(errs, fmt.Errorf("clip %q: negative length %v", c.Name, c.Length))
				}
			}
		}
	}
	return errors.Join(errs...)
}
