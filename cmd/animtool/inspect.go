package main

import (
	"fmt"
	"io"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritefight/anim"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect NAME",
	Short: "Print the frames and collision boxes of one animation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		catalog, _, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		data, err := lookup(catalog, args[0])
		if err != nil {
			return err
		}
		printAnimation(cmd.OutOrStdout(), args[0], data)
		return nil
	},
}

func printAnimation(w io.Writer, name string, data *anim.Data) {
	fmt.Fprintf(w, "%s: %d frames, %d ticks, looping=%t\n", name, data.Len(), data.TotalDuration(), data.Looping())
	for i := 0; i < data.Len(); i++ {
		s := data.Sprite(i)
		fmt.Fprintf(w, "  [%d] %s src=%v size=%.3fx%.3f ticks=%d\n",
			i, s.Texture, s.Source.Rect(), s.Size.X, s.Size.Y, s.Duration)
		fmt.Fprintf(w, "      hurtbox=%s hitbox=%s\n", formatBox(s.Hurtbox), formatBox(s.Hitbox))
	}
}

func formatBox(b *cp.BB) string {
	switch {
	case b == nil:
		return "-"
	case anim.Empty(*b):
		return "empty"
	}
	return fmt.Sprintf("(%.3f,%.3f)-(%.3f,%.3f)", b.L, b.B, b.R, b.T)
}
