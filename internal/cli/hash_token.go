package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/langportal/internal/auth"
	"github.com/mrlokans/langportal/internal/config"
)

// HashAdminTokenCommand prints the bcrypt hash to put in ADMIN_TOKEN_HASH.
type HashAdminTokenCommand struct {
	Token string
	Cost  int

	out io.Writer
}

func NewHashAdminTokenCommand() *HashAdminTokenCommand {
	return &HashAdminTokenCommand{out: os.Stdout}
}

func (cmd *HashAdminTokenCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-admin-token", flag.ContinueOnError)

	fs.StringVar(&cmd.Token, "token", "", "Admin token to hash, at least 16 characters (required)")
	fs.IntVar(&cmd.Cost, "cost", config.NewConfig().Admin.BcryptCost, "bcrypt cost (default from ADMIN_BCRYPT_COST)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s hash-admin-token -token <secret>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a bcrypt hash for ADMIN_TOKEN_HASH.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.Token == "" {
		fs.Usage()
		return fmt.Errorf("token is required")
	}
	if cmd.Cost < bcrypt.MinCost || cmd.Cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (cmd *HashAdminTokenCommand) Run() error {
	hash, err := auth.HashToken(cmd.Token, cmd.Cost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.out, hash)
	return nil
}
