package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/langportal/internal/config"
	"github.com/mrlokans/langportal/internal/database/activities"
)

const (
	defaultActivityName        = "Vocabulary Quiz"
	defaultActivityThumbnail   = "https://example.com/thumbnail.jpg"
	defaultActivityDescription = "Practice your vocabulary with flashcards"
)

// SeedActivityCommand inserts a study activity unless one with the same name
// already exists.
type SeedActivityCommand struct {
	DatabasePath string
	Name         string
	ThumbnailURL string
	Description  string

	out io.Writer
}

func NewSeedActivityCommand() *SeedActivityCommand {
	return &SeedActivityCommand{out: os.Stdout}
}

func (cmd *SeedActivityCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-activity", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Name, "name", defaultActivityName, "Activity name")
	fs.StringVar(&cmd.ThumbnailURL, "thumbnail", defaultActivityThumbnail, "Thumbnail URL")
	fs.StringVar(&cmd.Description, "description", defaultActivityDescription, "Activity description")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-activity [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the default study activity when it is missing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedActivityCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	in := activities.CreateInput{Name: cmd.Name}
	if cmd.ThumbnailURL != "" {
		in.ThumbnailURL = &cmd.ThumbnailURL
	}
	if cmd.Description != "" {
		in.Description = &cmd.Description
	}

	activity, created, err := activities.NewRepository(db.DB).Ensure(context.Background(), in)
	if err != nil {
		return fmt.Errorf("failed to seed activity: %w", err)
	}

	if created {
		fmt.Fprintf(cmd.out, "Created study activity %q (id %d)\n", activity.Name, activity.ID)
	} else {
		fmt.Fprintf(cmd.out, "Study activity %q already exists (id %d)\n", activity.Name, activity.ID)
	}
	return nil
}
