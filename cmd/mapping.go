package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/stockagent/internal/mapping"
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Print the field-to-source mapping built from the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix := mapping.NewIndex(cfg.Corpus.Dir)
		m, err := ix.Build()
		if err != nil {
			return eris.Wrap(err, "build field mapping")
		}
		fmt.Print(mapping.Render(m))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mappingCmd)
}
