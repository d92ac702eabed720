package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/db"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/substack-in-go/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a user account",
	Long: `Create a user account with the given email.

The password is taken from --password or, when that is not given, read
from the first line of stdin. It must be at least 8 characters long and
contain a number and a special character.

The new user id is printed to stdout.

Example:
  echo 'S3cure!pass' | substackctl user create alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			p, err := readPassword(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
				os.Exit(1)
			}
			password = p
		}

		user, err := createUser(cmd.Context(), args[0], password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Println(user.ID)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("password", "", "Password for the new user (read from stdin if empty)")
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("no password given")
	}
	return line, nil
}

// newUser validates the credentials and returns the unsaved user.
func newUser(email, password string) (*model.User, error) {
	req := schema.UserCreate{Email: email, Password: password}
	req.Normalize()
	if err := schema.Validate(&req); err != nil {
		return nil, describeValidation(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return model.NewUser(req.Email, hash), nil
}

// describeValidation flattens field errors into one line for the terminal.
func describeValidation(err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || len(ae.Fields) == 0 {
		return err
	}
	names := make([]string, 0, len(ae.Fields))
	for name := range ae.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+ae.Fields[name])
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}

func createUser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := newUser(email, password)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := gormstore.NewUsersStore(database).CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	return user, nil
}
