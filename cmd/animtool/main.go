package main

import (
	"fmt"
	"log"
	"os"

	"github.com/milk9111/spritefight/anim"
	"github.com/milk9111/spritefight/assets"
	"github.com/milk9111/spritefight/render"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	animationsDir string
	sheetsDir     string
	resourceFile  string
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("animtool: ")

	rootCmd := &cobra.Command{
		Use:           "animtool",
		Short:         "Validate, inspect, pack and preview sprite sheet animations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to animtool.toml")
	rootCmd.PersistentFlags().StringVar(&animationsDir, "animations", "", "directory of animation .yaml files (default: bundled assets)")
	rootCmd.PersistentFlags().StringVar(&sheetsDir, "sheets", "", "directory of sprite sheets (default: --animations)")
	rootCmd.PersistentFlags().StringVar(&resourceFile, "resource", "", "packed resource file to load instead of directories")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(viewCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// resolveConfig loads the config file and applies command line overrides.
func resolveConfig() (Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if animationsDir != "" {
		cfg.AnimationsDir = animationsDir
	}
	if sheetsDir != "" {
		cfg.SheetsDir = sheetsDir
	}
	if resourceFile != "" {
		cfg.ResourceFile = resourceFile
	}
	return cfg, nil
}

// loadCatalog registers the sheets and builds the catalog from whichever
// source cfg selects.
func loadCatalog(cfg Config) (*anim.Catalog, *render.Registry, error) {
	textures := render.NewRegistry()

	switch {
	case cfg.ResourceFile != "":
		res, err := assets.OpenBolt(cfg.ResourceFile)
		if err != nil {
			return nil, nil, err
		}
		defer res.Close()
		sheets, err := res.Sheets()
		if err != nil {
			return nil, nil, err
		}
		if err := textures.LoadRecords(sheets); err != nil {
			return nil, nil, err
		}
		catalog, err := anim.BuildCatalog(res, textures)
		return catalog, textures, err

	case cfg.AnimationsDir != "":
		if err := textures.LoadDir(os.DirFS(cfg.sheetsDir()), "."); err != nil {
			return nil, nil, err
		}
		catalog, err := anim.BuildCatalog(assets.DirSource{FS: os.DirFS(cfg.AnimationsDir)}, textures)
		return catalog, textures, err

	default:
		if err := textures.LoadDir(assets.Sheets(), "."); err != nil {
			return nil, nil, err
		}
		catalog, err := anim.BuildCatalog(assets.Animations(), textures)
		return catalog, textures, err
	}
}

func lookup(catalog *anim.Catalog, name string) (*anim.Data, error) {
	data, ok := catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("animation %q not found (have %v)", name, catalog.Names())
	}
	return data, nil
}
