package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/langportal/internal/audit"
	"github.com/mrlokans/langportal/internal/config"
	auditrepo "github.com/mrlokans/langportal/internal/database/audit"
	"github.com/mrlokans/langportal/internal/database/reset"
	"github.com/mrlokans/langportal/internal/entities"
)

// ResetCommand runs reset-history or full-reset against a database file.
type ResetCommand struct {
	DatabasePath string
	Full         bool
	Confirmed    bool

	name string
	out  io.Writer
}

// NewResetHistoryCommand clears sessions and reviews.
func NewResetHistoryCommand() *ResetCommand {
	return &ResetCommand{name: "reset-history", out: os.Stdout}
}

// NewFullResetCommand additionally clears activities and group memberships.
func NewFullResetCommand() *ResetCommand {
	return &ResetCommand{name: "full-reset", Full: true, out: os.Stdout}
}

func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Confirmed, "yes", false, "Confirm the destructive operation (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s -yes [options]\n\n", os.Args[0], cmd.name)
		if cmd.Full {
			fmt.Fprintf(os.Stderr, "Delete all reviews, sessions, activities and group memberships. Words and groups are kept.\n\n")
		} else {
			fmt.Fprintf(os.Stderr, "Delete all reviews and study sessions. Vocabulary is kept.\n\n")
		}
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if !cmd.Confirmed {
		fs.Usage()
		return fmt.Errorf("refusing to run %s without -yes", cmd.name)
	}
	return nil
}

func (cmd *ResetCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	auditLog := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditLog.Wait()

	repo := reset.NewRepository(db.DB)
	var result *entities.ResetResult
	if cmd.Full {
		result, err = repo.FullReset(context.Background())
	} else {
		result, err = repo.ResetHistory(context.Background())
	}
	auditLog.LogReset(cmd.action(), "cli", result, err)
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.name, err)
	}

	fmt.Fprintf(cmd.out, "Removed %d review items, %d study sessions", result.WordReviewItems, result.StudySessions)
	if cmd.Full {
		fmt.Fprintf(cmd.out, ", %d study activities, %d group memberships", result.StudyActivities, result.WordsGroups)
	}
	fmt.Fprintln(cmd.out)
	return nil
}

func (cmd *ResetCommand) action() string {
	if cmd.Full {
		return "full_reset"
	}
	return "reset_history"
}
