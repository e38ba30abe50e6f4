package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/geoscout/geoscout/internal/domain/model"
	"github.com/geoscout/geoscout/internal/util"
)

func runListSearches(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-searches", flag.ContinueOnError)
	limit := fs.Int("limit", 50, "maximum number of searches to list")
	offset := fs.Int("offset", 0, "listing offset")
	activeOnly := fs.Bool("active", false, "list only active searches")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, cleanup, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	searches, err := services.Automation.ListTrackedSearches(ctx, model.TrackedSearchListOptions{
		Limit:      *limit,
		Offset:     *offset,
		ActiveOnly: *activeOnly,
	})
	if err != nil {
		return fmt.Errorf("list tracked searches: %w", err)
	}

	return renderSearches(os.Stdout, searches)
}

func renderSearches(w io.Writer, searches []*model.TrackedSearch) error {
	if len(searches) == 0 {
		return writef(w, "(no tracked searches)\n")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tACTIVE\tINTERVAL\tNEXT RUN\tLAST RUN\tRUNS\tNEW\n"); err != nil {
		return err
	}
	for _, s := range searches {
		lastRun := "—"
		if s.LastRunAt != nil {
			lastRun = s.LastRunAt.Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\t%t\t%dh\t%s\t%s\t%d\t%d\n",
			s.ID, s.Name, s.IsActive, s.IntervalHours,
			s.NextRunAt.Format(time.RFC3339), lastRun,
			s.TotalRuns, s.TotalNewFound,
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func runRunNow(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("run-now", flag.ContinueOnError)
	id := fs.String("id", "", "tracked search id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, cleanup, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	logEntry, err := services.Automation.RunNow(ctx, *id)
	if err != nil {
		return fmt.Errorf("run now: %w", err)
	}

	return renderExecutionLog(os.Stdout, logEntry)
}

func renderExecutionLog(w io.Writer, entry *model.ExecutionLog) error {
	if entry == nil {
		return writef(w, "(no execution log)\n")
	}

	if err := writef(w, "Execution %s\n", entry.ID); err != nil {
		return err
	}
	if err := writef(w, "  Search:   %s\n", entry.TrackedSearchID); err != nil {
		return err
	}
	if err := writef(w, "  Trigger:  %s\n", entry.Trigger); err != nil {
		return err
	}
	if err := writef(w, "  Status:   %s\n", entry.Status); err != nil {
		return err
	}
	if err := writef(w, "  Results:  %d total, %d new\n", entry.TotalFound, entry.NewFound); err != nil {
		return err
	}
	if err := writef(w, "  Duration: %s\n", util.FormatProcessingDuration(entry.Duration())); err != nil {
		return err
	}
	if entry.Error != nil {
		if err := writef(w, "  Error:    %s\n", *entry.Error); err != nil {
			return err
		}
	}
	return nil
}

func runLogs(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	id := fs.String("id", "", "tracked search id")
	limit := fs.Int("limit", 20, "maximum number of log entries")
	offset := fs.Int("offset", 0, "listing offset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireID(fs, *id); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, cleanup, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	logs, err := services.Automation.GetExecutionLogs(ctx, model.ExecutionLogListOptions{
		TrackedSearchID: *id,
		Limit:           *limit,
		Offset:          *offset,
	})
	if err != nil {
		return fmt.Errorf("list execution logs: %w", err)
	}

	return renderExecutionLogs(os.Stdout, logs)
}

func renderExecutionLogs(w io.Writer, logs []*model.ExecutionLog) error {
	if len(logs) == 0 {
		return writef(w, "(no execution logs)\n")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tTRIGGER\tSTATUS\tTOTAL\tNEW\tDURATION\tAT\tERROR\n"); err != nil {
		return err
	}
	for _, l := range logs {
		errText := ""
		if l.Error != nil {
			errText = *l.Error
		}
		if err := writef(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			l.ID, l.Trigger, l.Status, l.TotalFound, l.NewFound,
			util.FormatProcessingDuration(l.Duration()),
			l.CreatedAt.Format(time.RFC3339), errText,
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
