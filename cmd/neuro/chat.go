package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/tools"
)

var chatUser int64

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the supervisor",
	Long: `Send a single message to the supervisor, or start an interactive session when no
message is given. Tools act on behalf of --user.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		sup, err := s.supervisor(ctx)
		if err != nil {
			return err
		}

		ctx = tools.WithCaller(ctx, tools.Caller{UserID: chatUser})

		var transcript []llm.Message
		turn := func(message string) error {
			transcript = append(transcript, llm.UserMessage(message))
			result, err := sup.Run(ctx, transcript)
			if err != nil {
				transcript = transcript[:len(transcript)-1]
				return err
			}
			transcript = append(transcript, llm.AssistantMessage(result.Reply))

			if result.Agent != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", result.Agent)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Reply)
			return nil
		}

		if len(args) == 1 {
			return turn(args[0])
		}

		return interactive(ctx, cmd, turn)
	},
}

func interactive(ctx context.Context, cmd *cobra.Command, turn func(string) error) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Type a message, or \"exit\" to quit.")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := turn(line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Int64VarP(&chatUser, "user", "u", 1, "User id the tools act for")
}
