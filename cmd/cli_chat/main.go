package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"engineer-grok/internal/client"
	"engineer-grok/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL   string
		markdown bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "cli_chat [message]",
		Short: "Chat with the engineering assistant from the terminal",
		Long: `Sends each message to the chat API and prints the rephrased query
and the streamed answer as they arrive.

With a message argument it sends it once and exits; without arguments it
reads messages from stdin until 'exit'.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClientConfig()
			if err != nil {
				return err
			}
			if apiURL == "" {
				apiURL = cfg.ChatAPIURL
			}

			logger := zap.NewNop()
			if verbose {
				logger, _ = zap.NewDevelopment()
				defer logger.Sync()
			}

			renderer, err := newTerminalRenderer(cmd.OutOrStdout(), markdown, "")
			if err != nil {
				return err
			}
			c := client.NewClient(apiURL, client.NewSession(renderer.Upsert), client.WithLogger(logger))

			if len(args) > 0 {
				return send(cmd.Context(), c, renderer, strings.Join(args, " "))
			}
			return chatLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), c, renderer)
		},
	}

	cmd.Flags().StringVar(&apiURL, "url", "", "chat endpoint (default $CHAT_API_URL)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the final answer as markdown")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped records and request errors")
	return cmd
}

func send(ctx context.Context, c *client.Client, r *terminalRenderer, text string) error {
	if err := c.Submit(ctx, text); err != nil {
		return err
	}
	return r.Flush()
}

func chatLoop(ctx context.Context, in io.Reader, out io.Writer, c *client.Client, r *terminalRenderer) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Type 'exit' to quit.")
	for {
		fmt.Fprint(out, "You: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		msg := strings.TrimSpace(line)
		if msg == "exit" {
			return nil
		}
		if msg != "" {
			if serr := send(ctx, c, r, msg); serr != nil {
				return serr
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
	}
}
