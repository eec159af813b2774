package cli

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/newsai/tabulae/internal/auth"
	"github.com/newsai/tabulae/internal/config"
	"github.com/newsai/tabulae/internal/database"
	"github.com/newsai/tabulae/internal/entities"
)

// CreateUserCommand creates a local user with an API token.
type CreateUserCommand struct {
	Username     string
	Email        string
	Password     string
	TeamName     string
	Role         string
	DatabasePath string
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively when omitted)")
	fs.StringVar(&cmd.TeamName, "team", "", "Team name; created if it does not exist (required)")
	fs.StringVar(&cmd.Role, "role", "member", "Role: admin or member")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> -email <email> -team <team> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a local user and print their API token.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username alice -email alice@example.com -team newsroom -role admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.TeamName == "" {
		return fmt.Errorf("required flag -team not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	password := cmd.Password
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	cfg := config.NewConfig()
	cfg.Auth.Mode = config.AuthModeLocal

	db, err := database.New(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, cfg.Auth)
	user, token, err := service.CreateUser(cmd.Username, cmd.Email, password, cmd.TeamName, entities.UserRole(cmd.Role))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d) on team %q\n", user.Username, user.ID, cmd.TeamName)
	fmt.Printf("API token: %s\n", token)
	fmt.Println("Store this token securely - it will not be shown again.")

	return nil
}
