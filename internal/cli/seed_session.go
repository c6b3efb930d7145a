package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/langportal/internal/config"
	"github.com/mrlokans/langportal/internal/database/activities"
	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/reviews"
	"github.com/mrlokans/langportal/internal/database/sessions"
	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/pagination"
)

// SeedSessionCommand records a demo study session: the first group and
// activity, with a correct answer for the group's first words.
type SeedSessionCommand struct {
	DatabasePath string
	Reviews      int

	out io.Writer
}

func NewSeedSessionCommand() *SeedSessionCommand {
	return &SeedSessionCommand{out: os.Stdout}
}

func (cmd *SeedSessionCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-session", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.Reviews, "reviews", 2, "Number of words to mark as reviewed")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-session [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Record a sample study session with correct reviews.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Reviews < 0 {
		return fmt.Errorf("reviews must not be negative")
	}
	return nil
}

func (cmd *SeedSessionCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	first := pagination.NewRequest(1, 1)

	groupList, _, err := groups.NewRepository(db.DB).List(ctx, first, groups.DefaultSort)
	if err != nil {
		return err
	}
	if len(groupList) == 0 {
		return fmt.Errorf("no groups found; run seed first")
	}
	activityList, _, err := activities.NewRepository(db.DB).List(ctx, first)
	if err != nil {
		return err
	}
	if len(activityList) == 0 {
		return fmt.Errorf("no study activities found; run seed-activity first")
	}

	session, err := sessions.NewRepository(db.DB).Create(ctx, groupList[0].ID, activityList[0].ID)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	recorded := 0
	if cmd.Reviews > 0 {
		groupWords, _, err := words.NewRepository(db.DB).ListByGroup(ctx, groupList[0].ID, pagination.NewRequest(1, cmd.Reviews), words.DefaultSort)
		if err != nil {
			return err
		}
		reviewRepo := reviews.NewRepository(db.DB)
		correct := true
		for _, w := range groupWords {
			_, err := reviewRepo.Create(ctx, reviews.CreateInput{StudySessionID: session.ID, WordID: w.ID, Correct: &correct})
			if err != nil {
				return fmt.Errorf("failed to record review: %w", err)
			}
			recorded++
		}
	}

	fmt.Fprintf(cmd.out, "Created study session %d for group %q with %d reviews\n", session.ID, groupList[0].Name, recorded)
	return nil
}
