package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritefight/anim"
	"github.com/milk9111/spritefight/assets"
	"github.com/milk9111/spritefight/render"
	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"
)

var viewCmd = &cobra.Command{
	Use:   "view NAME [OPPONENT]",
	Short: "Play an animation on two fighters facing each other",
	Long: "Play NAME on the left fighter and OPPONENT (default NAME) on the right one.\n" +
		"Space pauses, . steps one tick while paused, R restarts, B toggles boxes.\n" +
		"Animation and sheet directories are reloaded when their files change.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		names := [2]string{args[0], args[0]}
		if len(args) == 2 {
			names[1] = args[1]
		}

		v, err := newViewer(cfg, names)
		if err != nil {
			return err
		}
		defer v.close()

		ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
		ebiten.SetWindowTitle(fmt.Sprintf("animtool: %s vs %s", names[0], names[1]))
		return ebiten.RunGame(v)
	},
}

type fighter struct {
	name     string
	anim     anim.Animation
	pos      cp.Vector
	facing   anim.Facing
	finishes int
	hit      bool
}

type viewer struct {
	cfg      Config
	catalog  *anim.Catalog
	textures *render.Registry
	fighters [2]fighter
	watcher  *assets.Watcher
	paused   bool
	step     bool
	ticks    int
}

func newViewer(cfg Config, names [2]string) (*viewer, error) {
	v := &viewer{
		cfg: cfg,
		fighters: [2]fighter{
			{name: names[0], pos: cp.Vector{X: -0.25}, facing: anim.East},
			{name: names[1], pos: cp.Vector{X: 0.25}, facing: anim.West},
		},
	}
	if err := v.reload(); err != nil {
		return nil, err
	}

	if cfg.AnimationsDir != "" && cfg.ResourceFile == "" {
		dirs := []string{cfg.AnimationsDir}
		if cfg.sheetsDir() != cfg.AnimationsDir {
			dirs = append(dirs, cfg.sheetsDir())
		}
		w, err := assets.NewWatcher(dirs...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			v.watcher = w
		}
	}
	return v, nil
}

// reload rebuilds the catalog and restarts every fighter on the new data. On
// error the previous catalog stays in use.
func (v *viewer) reload() error {
	catalog, textures, err := loadCatalog(v.cfg)
	if err != nil {
		return err
	}
	for i := range v.fighters {
		if _, err := lookup(catalog, v.fighters[i].name); err != nil {
			return err
		}
	}
	v.catalog, v.textures = catalog, textures
	for i := range v.fighters {
		f := &v.fighters[i]
		f.anim, _ = catalog.Instance(f.name)
		f.finishes = 0
	}
	return nil
}

func (v *viewer) close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	changed := ""
	for {
		select {
		case name, ok := <-v.watcher.Events:
			if !ok {
				v.watcher = nil
				return
			}
			changed = name
			continue
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
			continue
		default:
		}
		break
	}
	if changed == "" {
		return
	}
	if err := v.reload(); err != nil {
		log.Printf("reload after %s: %v", changed, err)
		return
	}
	log.Printf("reloaded %d animations after %s", v.catalog.Len(), changed)
}

func (v *viewer) Update() error {
	v.pollWatcher()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		v.step = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		for i := range v.fighters {
			v.fighters[i].anim.Reset()
			v.fighters[i].finishes = 0
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		v.cfg.ShowBoxes = !v.cfg.ShowBoxes
	}

	if v.paused && !v.step {
		return nil
	}
	v.step = false
	v.ticks++

	for i := range v.fighters {
		if v.fighters[i].anim.Advance() {
			v.fighters[i].finishes++
		}
	}
	v.fighters[0].hit = lands(&v.fighters[1], &v.fighters[0])
	v.fighters[1].hit = lands(&v.fighters[0], &v.fighters[1])
	return nil
}

// lands reports whether attacker's current hitbox touches target's hurtbox.
func lands(attacker, target *fighter) bool {
	hit, ok := attacker.anim.Sprite().WorldHitbox(attacker.pos, attacker.facing)
	if !ok {
		return false
	}
	hurt, ok := target.anim.Sprite().WorldHurtbox(target.pos, target.facing)
	return ok && anim.Overlaps(hit, hurt)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	d := &render.ScreenDrawer{
		Screen:        screen,
		Textures:      v.textures,
		PixelsPerUnit: v.cfg.PixelsPerUnit,
	}

	for i := range v.fighters {
		f := &v.fighters[i]
		var tint color.Color = color.White
		if f.hit {
			tint = colornames.Lightcoral
		}
		f.anim.Render(d, tint, f.pos, f.facing)
		if !v.cfg.ShowBoxes {
			continue
		}
		if b, ok := f.anim.Sprite().WorldHurtbox(f.pos, f.facing); ok {
			d.DrawBox(b, colornames.Limegreen)
		}
		if b, ok := f.anim.Sprite().WorldHitbox(f.pos, f.facing); ok {
			d.DrawBox(b, colornames.Red)
		}
	}

	msg := fmt.Sprintf("tick %d", v.ticks)
	if v.paused {
		msg += " (paused)"
	}
	for _, f := range v.fighters {
		msg += fmt.Sprintf("\n%s frame %d/%d counter %d finished x%d",
			f.name, f.anim.Index()+1, f.anim.Data().Len(), f.anim.FrameCounter(), f.finishes)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.WindowWidth, v.cfg.WindowHeight
}
