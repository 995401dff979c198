// Package host drives timeline playback from an Ebitengine game loop.
//
// A [Player] advances one graph processor per tick by the fixed step
// Ebitengine guarantees (1/TPS seconds). [Run] opens a window around a
// player for tools and examples that have no game of their own.
package host

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/timeline"
)

// Player advances a GraphProcessor once per ebiten tick.
type Player struct {
	Processor *timeline.GraphProcessor
	// Speed scales the tick step. Zero means 1; negative values play
	// backward until the clock reaches zero.
	Speed float64
	// TickRate returns ticks per second. Defaults to ebiten.TPS.
	TickRate func() int

	paused bool
}

// NewPlayer returns a player for p at normal speed.
func NewPlayer(p *timeline.GraphProcessor) *Player {
	return &Player{Processor: p, Speed: 1}
}

// Pause stops advancing without stopping playback.
func (pl *Player) Pause() { pl.paused = true }

// Resume continues after Pause.
func (pl *Player) Resume() { pl.paused = false }

// Paused reports whether the player is paused.
func (pl *Player) Paused() bool { return pl.paused }

// Step returns the time one tick advances the processor by.
func (pl *Player) Step() float64 {
	tps := ebiten.DefaultTPS
	if pl.TickRate != nil {
		tps = pl.TickRate()
	} else if t := ebiten.TPS(); t > 0 {
		tps = t
	}
	if tps <= 0 {
		return 0
	}
	speed := pl.Speed
	if speed == 0 {
		speed = 1
	}
	return speed / float64(tps)
}

// Update advances the processor by one tick. It matches the signature of
// ebiten.Game's Update so a game can call it directly.
func (pl *Player) Update() error {
	p := pl.Processor
	if p == nil || p.IsDisposed() || pl.paused || !p.Active() {
		return nil
	}
	p.Advance(pl.Step())
	return nil
}
