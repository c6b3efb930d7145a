package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/langportal/internal/analyzer"
	"github.com/mrlokans/langportal/internal/audit"
	"github.com/mrlokans/langportal/internal/config"
	auditrepo "github.com/mrlokans/langportal/internal/database/audit"
	"github.com/mrlokans/langportal/internal/database/groups"
	"github.com/mrlokans/langportal/internal/database/words"
	"github.com/mrlokans/langportal/internal/importers"
)

// SeedCommand imports a JSON vocabulary file into a named group.
type SeedCommand struct {
	DatabasePath string
	File         string
	Group        string
	Analyze      bool

	out io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{out: os.Stdout}
}

// ParseFlags accepts either -file/-group or the positional form
// "seed <file> <group>".
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.File, "file", "", "JSON file with [{kanji, romaji, english, parts}] entries (required)")
	fs.StringVar(&cmd.Group, "group", "", "Group to import into; created when missing (required)")
	fs.BoolVar(&cmd.Analyze, "analyze", false, "Fill missing parts using morphological analysis")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options] [file] [group]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a vocabulary file into a group.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed data_verbs.json \"Core Verbs\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file data_adjectives.json -group \"Core Adjectives\" -analyze\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if cmd.File == "" && len(rest) > 0 {
		cmd.File, rest = rest[0], rest[1:]
	}
	if cmd.Group == "" && len(rest) > 0 {
		cmd.Group = rest[0]
	}

	if cmd.File == "" || cmd.Group == "" {
		fs.Usage()
		return fmt.Errorf("file and group are required")
	}
	return nil
}

func (cmd *SeedCommand) Run() error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	items, err := importers.ParseVocabulary(f)
	if err != nil {
		return fmt.Errorf("invalid seed file %s: %w", cmd.File, err)
	}
	log.Printf("Found %d words in %s", len(items), cmd.File)

	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	auditLog := audit.NewService(auditrepo.NewRepository(db.DB))
	defer auditLog.Wait()

	opts := []importers.Option{importers.WithRecorder(auditLog)}
	if cmd.Analyze {
		a, err := analyzer.New()
		if err != nil {
			return err
		}
		opts = append(opts, importers.WithPartsFiller(a))
	}

	importer := importers.NewVocabularyImporter(groups.NewRepository(db.DB), words.NewRepository(db.DB), opts...)
	result, err := importer.ImportByName(context.Background(), cmd.Group, items)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.out, "Seeded %d words into group %q (id %d)\n", result.WordsImported, cmd.Group, result.GroupID)
	return nil
}
