package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/spritefight/assets"
	"github.com/spf13/cobra"
)

var packOut string

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Validate animations and write them with their sheets into a resource file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if cfg.ResourceFile != "" {
			return errors.New("pack reads directories; drop --resource")
		}
		// Refuse to pack anything that would fail at startup.
		if _, _, err := loadCatalog(cfg); err != nil {
			return err
		}

		animSrc, sheetSrc := assets.Animations(), assets.DirSource{FS: assets.Sheets()}
		if cfg.AnimationsDir != "" {
			animSrc = assets.DirSource{FS: os.DirFS(cfg.AnimationsDir)}
			sheetSrc = assets.DirSource{FS: os.DirFS(cfg.sheetsDir())}
		}
		sheetSrc.Exts = []string{".png", ".webp", ".bmp"}

		anims, err := animSrc.Records()
		if err != nil {
			return err
		}
		sheets, err := sheetSrc.Records()
		if err != nil {
			return err
		}
		if err := assets.Pack(packOut, anims, sheets); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "packed %d animations and %d sheets into %s\n", len(anims), len(sheets), packOut)
		return nil
	},
}

func init() {
	packCmd.Flags().StringVarP(&packOut, "out", "o", "animations.res", "resource file to write")
}
