// Command adduser registers an account directly against the configured store.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/database"
	"github.com/isdelr/book-tracker-be/internal/services"
	"golang.org/x/term"
)

const defaultDatabaseURL = "sqlite:./booktracker.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("username", "", "Username")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbURL := fs.String("db", "", "Database URL (defaults to $DATABASE_URL, then "+defaultDatabaseURL+")")
	dbName := fs.String("dbname", "booktracker", "Database name (MongoDB only)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -username <name> -email <email> [-password <password>] [-db <url>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: username, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", auth.MaxPasswordBytes)
	}

	url := *dbURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		url = defaultDatabaseURL
	}

	ctx := context.Background()
	store, err := database.Open(ctx, url, *dbName)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close(ctx)

	user, err := services.NewUserService(store.Users()).CreateUser(ctx, *username, *email, password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			return fmt.Errorf("user %s already exists", *username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
