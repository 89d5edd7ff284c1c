package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every animation and report a summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		catalog, textures, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFRAMES\tTICKS\tLOOPING")
		for _, name := range catalog.Names() {
			data, _ := catalog.Get(name)
			fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", name, data.Len(), data.TotalDuration(), data.Looping())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d animations over %d sheets ok\n", catalog.Len(), textures.Len())
		return nil
	},
}
