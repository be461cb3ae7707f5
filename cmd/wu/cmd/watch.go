package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wu-lang/wu/internal/watch"
)

func newWatchCmd(s *session) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch PATH...",
		Short: "Re-check sources whenever they change",
		Long: `Checks every .wu file under the given paths once, then again on each
change. A PATH may be a file or a directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return s.watch(ctx, cmd, args, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "delay before re-checking")
	return cmd
}

func (s *session) watch(ctx context.Context, cmd *cobra.Command, paths []string, debounce time.Duration) error {
	w, err := watch.New(watch.WithDebounce(debounce), watch.WithLogger(s.logger.Slog()))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	rerun := func(files []string) {
		if err := s.checkFiles(files); err != nil && !errors.Is(err, errReported) {
			s.logger.Error("check failed", "error", err)
			return
		}
		fmt.Fprintf(out, "[%s] checked %d file(s)\n", time.Now().Format("15:04:05"), len(files))
	}

	initial, err := sourcesUnder(paths)
	if err != nil {
		return err
	}
	rerun(initial)

	s.logger.Info("watching", "paths", paths)
	err = w.Run(ctx, func(ev watch.Event) {
		if ev.Op&(watch.OpRemove|watch.OpRename) != 0 && ev.Op&(watch.OpWrite|watch.OpCreate) == 0 {
			s.logger.Info("file removed", "file", ev.Path)
			return
		}
		rerun([]string{ev.Path})
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
