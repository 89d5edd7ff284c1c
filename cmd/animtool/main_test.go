package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritefight/anim"
	"github.com/milk9111/spritefight/assets"
	"github.com/milk9111/spritefight/render"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != defaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "animtool.toml", `
animations_dir = "anims"
pixels_per_unit = 160.0
show_boxes = false
`)
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.AnimationsDir != "anims" || cfg.PixelsPerUnit != 160 || cfg.ShowBoxes {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.WindowWidth != defaultWindowWidth || cfg.WindowHeight != defaultWindowHeight {
		t.Fatalf("expected default window size to survive, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.sheetsDir() != "anims" {
		t.Fatalf("expected sheets to default to the animations dir, got %q", cfg.sheetsDir())
	}
}

func TestDefaultConfigMatchesDrawer(t *testing.T) {
	cfg := defaultConfig()
	if cfg.PixelsPerUnit != render.DefaultPixelsPerUnit {
		t.Fatalf("expected %v pixels per unit, got %v", render.DefaultPixelsPerUnit, cfg.PixelsPerUnit)
	}
	// A cell is 1/2.5 world units wide whatever its pixel size.
	if got := cfg.PixelsPerUnit / 2.5; got != defaultWindowWidth/5 {
		t.Fatalf("expected %d pixel cells, got %v", defaultWindowWidth/5, got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax":     "pixels_per_unit = ",
		"ppu":        "pixels_per_unit = -1.0",
		"window":     "window_width = 0",
		"wrong_type": `window_height = "tall"`,
		"unknown":    "pixel_per_unit = 160.0",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeFile(t, dir, name+".toml", contents)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadCatalogBundled(t *testing.T) {
	catalog, textures, err := loadCatalog(defaultConfig())
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if catalog.Len() != 4 || textures.Len() != 1 {
		t.Fatalf("expected 4 animations over 1 sheet, got %d over %d", catalog.Len(), textures.Len())
	}
	if _, err := lookup(catalog, "punch"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := lookup(catalog, "kick"); err == nil || !strings.Contains(err.Error(), "kick") {
		t.Fatalf("expected not found error naming kick, got %v", err)
	}
}

func TestLoadCatalogFromDirectory(t *testing.T) {
	dir := t.TempDir()
	sheet, err := assets.LoadFile("sheets/fighter.png")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fighter.png"), sheet, 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	writeFile(t, dir, "stand.yaml", `
sprite_sheet: {texture: fighter, count_x: 4, count_y: 2}
sprites:
  - {hurtbox: true, duration: 1, sprite_index: 6}
looping: true
`)

	cfg := defaultConfig()
	cfg.AnimationsDir = dir
	catalog, _, err := loadCatalog(cfg)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if got := catalog.Names(); !slices.Equal(got, []string{"stand"}) {
		t.Fatalf("expected only the directory's animations, got %v", got)
	}

	writeFile(t, dir, "broken.yaml", "sprite_sheet: {texture: nowhere, count_x: 1, count_y: 1}\nsprites: [{duration: 1}]\n")
	if _, _, err := loadCatalog(cfg); err == nil || !strings.Contains(err.Error(), `"broken"`) {
		t.Fatalf("expected error naming broken, got %v", err)
	}
}

func TestPackedResourceMatchesBundled(t *testing.T) {
	anims, err := assets.Animations().Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	sheets, err := assets.DirSource{FS: assets.Sheets(), Exts: []string{".png"}}.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	path := filepath.Join(t.TempDir(), "animations.res")
	if err := assets.Pack(path, anims, sheets); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	cfg := defaultConfig()
	cfg.ResourceFile = path
	packed, _, err := loadCatalog(cfg)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	bundled, _, err := loadCatalog(defaultConfig())
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if !slices.Equal(packed.Names(), bundled.Names()) {
		t.Fatalf("expected %v, got %v", bundled.Names(), packed.Names())
	}
	for _, name := range bundled.Names() {
		p, _ := packed.Get(name)
		b, _ := bundled.Get(name)
		if p.Len() != b.Len() || p.TotalDuration() != b.TotalDuration() {
			t.Fatalf("%s: packed and bundled differ", name)
		}
	}
}

func TestPrintAnimation(t *testing.T) {
	catalog, _, err := loadCatalog(defaultConfig())
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	data, _ := catalog.Get("getup")

	var buf bytes.Buffer
	printAnimation(&buf, "getup", data)
	out := buf.String()
	for _, want := range []string{"getup: 3 frames, 22 ticks, looping=false", "[0] fighter", "hurtbox=-", "hitbox=-"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestFormatBox(t *testing.T) {
	if got := formatBox(nil); got != "-" {
		t.Fatalf("nil box: got %q", got)
	}
	if got := formatBox(&cp.BB{L: 1, R: 0, B: 1, T: 0}); got != "empty" {
		t.Fatalf("empty box: got %q", got)
	}
	if got := formatBox(&cp.BB{L: -0.1, B: -0.2, R: 0.1, T: 0.2}); got != "(-0.100,-0.200)-(0.100,0.200)" {
		t.Fatalf("box: got %q", got)
	}
}

func TestLands(t *testing.T) {
	catalog, _, err := loadCatalog(defaultConfig())
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	punch, _ := catalog.Get("punch")
	idle, _ := catalog.Get("idle")

	attacker := fighter{anim: punch.Instance(), pos: cp.Vector{X: -0.25}, facing: anim.East}
	target := fighter{anim: idle.Instance(), pos: cp.Vector{X: -0.05}, facing: anim.West}

	if lands(&attacker, &target) {
		t.Fatalf("wind-up frame has no hitbox")
	}
	for i := 0; i < punch.Sprite(0).Duration; i++ {
		attacker.anim.Advance()
	}
	if !lands(&attacker, &target) {
		t.Fatalf("active frame should reach a target in range")
	}
	target.pos.X = 0.5
	if lands(&attacker, &target) {
		t.Fatalf("active frame should miss a distant target")
	}
}
