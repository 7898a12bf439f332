package ember

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window and per-frame hooks used by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen before particles are drawn. A zero alpha
	// leaves the screen as ebiten cleared it.
	ClearColor Color
	// ShowFPS overlays FPS, TPS and the live particle count.
	ShowFPS bool
	// Debug turns on EffectSet debug mode.
	Debug bool
	// Update runs once per tick before the effects advance. Returning an
	// error (e.g. ebiten.Termination) ends the loop.
	Update func(dt float64) error
	// Draw runs after the particles, for overlays.
	Draw func(screen *ebiten.Image)
}

// Run opens a window and drives effects at ebiten's tick rate: one Update
// and one Draw per frame, in that order. It blocks until the window closes
// or a hook returns an error.
//
// For full control, implement ebiten.Game yourself and call EffectSet.Update
// and EffectSet.Draw with an ImageBatch directly.
func Run(effects *EffectSet, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	effects.SetDebugMode(cfg.Debug)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&runner{
		effects: effects,
		cfg:     cfg,
		batch:   NewImageBatch(),
	})
}

type runner struct {
	effects *EffectSet
	cfg     RunConfig
	batch   *ImageBatch
}

func (g *runner) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.cfg.Update != nil {
		if err := g.cfg.Update(dt); err != nil {
			return err
		}
	}
	g.effects.Update(dt)
	return nil
}

func (g *runner) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	g.batch.Begin(screen)
	g.effects.Draw(g.batch)
	g.batch.End()

	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.effects.AliveParticles()))
	}
}

func (g *runner) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
