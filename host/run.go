package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowStatus overlays FPS, TPS and the playback clock.
	ShowStatus bool
	// Update runs before the player advances each tick, for input handling.
	Update func() error
	// Draw renders one frame. The processor has already been advanced for
	// the tick.
	Draw func(screen *ebiten.Image)
	// Background fills the screen before Draw. Nil leaves it cleared.
	Background color.Color
}

// Run opens a window and drives pl until the window closes.
func Run(pl *Player, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{player: pl, cfg: cfg})
}

// game is the ebiten.Game shell around a Player.
type game struct {
	player *Player
	cfg    RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	return g.player.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowStatus {
		ebitenutil.DebugPrint(screen, g.status())
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// status formats the overlay text.
func (g *game) status() string {
	line := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	p := g.player.Processor
	if p == nil || p.IsDisposed() {
		return line
	}
	state := "stopped"
	switch {
	case g.player.Paused():
		state = "paused"
	case p.Active():
		state = "playing"
	}
	return fmt.Sprintf("%s\n%s %.2f / %.2f", line, state, p.CurrentTime(), p.Length())
}
