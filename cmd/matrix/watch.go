package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
)

func newWatchCmd(configPath *string) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream matrix change events from hermes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Hermes.URL == "" {
				return fmt.Errorf("hermes.url is not configured")
			}
			logger := newLogger(os.Stderr, cfg.Logging)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, "matrix-watch", logger)
			if err != nil {
				return err
			}
			defer hc.Close()

			return watch(ctx, hc, subject, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&subject, "subject", hermes.SubjectAll, "Subject filter")
	return cmd
}

func watch(ctx context.Context, c hermes.Client, subject string, out io.Writer) error {
	lines := make(chan string, 64)
	err := c.Subscribe(subject, func(subj string, data []byte) {
		select {
		case lines <- fmt.Sprintf("%s %s", subj, data):
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case l := <-lines:
			fmt.Fprintln(out, l)
		}
	}
}
