package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive prompt loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initAgent(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		mem := env.Sessions.Get("repl")
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Print("\nStockAgent > ")
			if !scanner.Scan() {
				break
			}
			prompt := strings.TrimSpace(scanner.Text())
			if prompt == "" {
				continue
			}
			if lower := strings.ToLower(prompt); lower == "exit" || lower == "quit" {
				break
			}

			// A failed prompt never ends the session.
			answer, err := env.Router.Route(ctx, mem, prompt)
			if err != nil {
				zap.L().Error("prompt failed", zap.Error(err))
				fmt.Printf("\nError: %v\n", err)
				continue
			}
			fmt.Println("\n" + answer)
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
