package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"rcfm/internal/models"
	"rcfm/internal/transfers"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newTransferCmd() *cobra.Command {
	var (
		move  bool
		isDir bool
	)

	cmd := &cobra.Command{
		Use:   "transfer SOURCE DEST_DIR",
		Short: "Copy or move one item through the daemon and follow its progress",
		Long: `Copy or move a file or directory through the rclone daemon.

Paths use rclone syntax: "remote:dir/file" for a configured remote,
anything else is a local path. The item keeps its name inside DEST_DIR.
Interrupting the command stops the job on the daemon.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := models.OperationCopy
			if move {
				op = models.OperationMove
			}
			return runTransfer(cmd.Context(), args[0], args[1], op, isDir)
		},
	}

	cmd.Flags().BoolVar(&move, "move", false, "delete the source once it has been transferred")
	cmd.Flags().BoolVar(&isDir, "dir", false, "the source is a directory")

	return cmd
}

func runTransfer(ctx context.Context, source, dest string, op models.Operation, isDir bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logLevel.Set(slog.LevelWarn)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srcLoc, srcPath := models.ParseLocation(source)
	srcPath = strings.TrimSuffix(srcPath, "/")
	dstLoc, dstPath := models.ParseLocation(dest)

	registry := transfers.NewRegistry(newClient(cfg))
	job, err := registry.Create(ctx, transfers.CreateRequest{
		Source: models.File{
			Location: srcLoc,
			Path:     srcPath,
			Name:     path.Base(srcPath),
			Size:     models.UnknownSize,
			IsDir:    isDir,
		},
		Dest:      dstLoc,
		DestPath:  strings.TrimSuffix(dstPath, "/"),
		Operation: op,
	})
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions64(job.TotalSize,
		progressbar.OptionSetDescription(fmt.Sprintf("%s %s", op, job.Name)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)

	ticker := time.NewTicker(cfg.GetTransfers().PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr)
			slog.Warn("interrupted, stopping job", "job_id", job.ID)
			<-job.Stop(context.Background())
			return fmt.Errorf("transfer of %s interrupted", job.Name)

		case <-ticker.C:
			registry.RefreshAll(ctx)

			if stats := job.Stats(); stats != nil {
				_ = bar.Set64(stats.Bytes)
			}

			switch job.State() {
			case models.TransferStateCompleted:
				_ = bar.Finish()
				fmt.Fprintf(os.Stdout, "%s -> %s\n", job.Source, job.Destination)
				return nil
			case models.TransferStateFailed:
				_ = bar.Exit()
				fmt.Fprintln(os.Stderr)
				return fmt.Errorf("transfer of %s failed: %s", job.Name, job.Status().Error)
			}
		}
	}
}

func newRemotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remotes",
		Short: "List the remotes configured on the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			logLevel.Set(slog.LevelWarn)

			remotes, err := newClient(cfg).ListRemotes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list remotes: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE")
			for _, r := range remotes {
				fmt.Fprintf(w, "%s:\t%s\n", r.Name, r.Type)
			}
			return w.Flush()
		},
	}
}
