package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/geoscout/geoscout/internal/domain/model"
)

func runNotifications(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	unread := fs.Bool("unread", false, "list only unread notifications")
	limit := fs.Int("limit", 50, "maximum number of notifications")
	offset := fs.Int("offset", 0, "listing offset")
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

	notifications, err := services.Automation.ListNotifications(ctx, model.NotificationListOptions{
		UnreadOnly: *unread,
		Limit:      *limit,
		Offset:     *offset,
	})
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	return renderNotifications(os.Stdout, notifications)
}

func renderNotifications(w io.Writer, notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return writef(w, "(no notifications)\n")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tTYPE\tREAD\tTITLE\tSEARCH\tAT\n"); err != nil {
		return err
	}
	for _, n := range notifications {
		if err := writef(tw, "%s\t%s\t%t\t%s\t%s\t%s\n",
			n.ID, n.Type, n.IsRead, n.Title, n.TrackedSearchID,
			n.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}

func runMarkRead(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("mark-read", flag.ContinueOnError)
	id := fs.String("id", "", "notification id")
	all := fs.Bool("all", false, "mark every unread notification as read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" && !*all {
		fs.Usage()
		return errors.New("either -id or -all is required")
	}
	if *id != "" && *all {
		fs.Usage()
		return errors.New("-id and -all are mutually exclusive")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultCommandTimeout)
	defer cancel()

	services, cleanup, err := connectInfra(cmdCtx)
	if err != nil {
		return err
	}
	defer cleanup()

	if *all {
		n, markErr := services.Automation.MarkAllNotificationsRead(ctx)
		if markErr != nil {
			return markErr
		}
		return writef(os.Stdout, "marked %d notifications as read\n", n)
	}

	if markErr := services.Automation.MarkNotificationRead(ctx, *id); markErr != nil {
		return markErr
	}
	return writef(os.Stdout, "marked notification %s as read\n", *id)
}

func runStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
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

	stats, err := services.Automation.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	return renderStats(os.Stdout, stats)
}

func renderStats(w io.Writer, stats *model.AutomationStats) error {
	if stats == nil {
		return writef(w, "(no stats)\n")
	}

	if err := writef(w, "Automation Stats\n"); err != nil {
		return err
	}
	if err := writef(w, "  Tracked searches:     %d (%d active)\n",
		stats.TotalSearches, stats.ActiveSearches); err != nil {
		return err
	}
	if err := writef(w, "  Executions:           %d\n", stats.TotalExecutions); err != nil {
		return err
	}
	return writef(w, "  Unread notifications: %d\n", stats.UnreadNotifications)
}
