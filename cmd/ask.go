package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Answer a single prompt and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initAgent(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		prompt := strings.Join(args, " ")
		mem := env.Sessions.Get("cli")

		answer, err := env.Router.Route(ctx, mem, prompt)
		if err != nil {
			return eris.Wrap(err, "route prompt")
		}

		fmt.Println(answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
