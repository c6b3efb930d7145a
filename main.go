package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/langportal/internal/cli"
	"github.com/mrlokans/langportal/internal/config"
	"github.com/mrlokans/langportal/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type subcommand interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	config.LoadDotEnv()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "migrate":
		run(cli.NewMigrateCommand(), args)
	case "seed":
		run(cli.NewSeedCommand(), args)
	case "seed-activity":
		run(cli.NewSeedActivityCommand(), args)
	case "seed-session":
		run(cli.NewSeedSessionCommand(), args)
	case "reset-history":
		run(cli.NewResetHistoryCommand(), args)
	case "full-reset":
		run(cli.NewFullResetCommand(), args)
	case "hash-admin-token":
		run(cli.NewHashAdminTokenCommand(), args)

	case "version":
		fmt.Printf("langportal %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd subcommand, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve             Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate           Apply pending schema migrations\n")
	fmt.Fprintf(os.Stderr, "  seed              Import a vocabulary JSON file into a group\n")
	fmt.Fprintf(os.Stderr, "  seed-activity     Create the default study activity\n")
	fmt.Fprintf(os.Stderr, "  seed-session      Record a sample study session\n")
	fmt.Fprintf(os.Stderr, "  reset-history     Delete all study sessions and reviews\n")
	fmt.Fprintf(os.Stderr, "  full-reset        Also delete activities and group memberships\n")
	fmt.Fprintf(os.Stderr, "  hash-admin-token  Print a bcrypt hash for ADMIN_TOKEN_HASH\n")
	fmt.Fprintf(os.Stderr, "  version           Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
