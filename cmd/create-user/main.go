// CLI tool to create a user with a bcrypt-hashed password.
// Usage: go run ./cmd/create-user --name "Asha" --email asha@example.com [--phone ...] [--password ...]
// Omitted fields are prompted for on stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/config"
)

type newUser struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

var flags newUser

var rootCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a NutriLens user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := fillMissing(flags, bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required")
		}
		ctx := cmd.Context()
		conn, err := pgx.Connect(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("unable to connect to database: %w", err)
		}
		defer conn.Close(ctx)

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		var phone *string
		if u.Phone != "" {
			phone = &u.Phone
		}

		var userID int
		err = conn.QueryRow(ctx,
			`INSERT INTO users (full_name, email, phone, password)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			u.Name, u.Email, phone, string(hash),
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		color.Green("\nUser created successfully!")
		fmt.Printf("  ID:    %d\n", userID)
		fmt.Printf("  Name:  %s\n", u.Name)
		fmt.Printf("  Email: %s\n", u.Email)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&flags.Name, "name", "", "Full name")
	rootCmd.Flags().StringVar(&flags.Email, "email", "", "Email address (login)")
	rootCmd.Flags().StringVar(&flags.Phone, "phone", "", "Phone number (optional login)")
	rootCmd.Flags().StringVar(&flags.Password, "password", "", "Password (prompted when omitted)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("create-user: %v", err)
		os.Exit(1)
	}
}

// fillMissing prompts for the required fields that were not passed as flags
// and validates the result.
func fillMissing(u newUser, in *bufio.Reader, out io.Writer) (newUser, error) {
	prompt := func(label string, dst *string) {
		if *dst != "" {
			return
		}
		fmt.Fprintf(out, "%s: ", label)
		line, _ := in.ReadString('\n')
		*dst = strings.TrimSpace(line)
	}
	prompt("Name", &u.Name)
	prompt("Email", &u.Email)
	prompt("Password", &u.Password)

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = strings.TrimSpace(u.Phone)
	switch {
	case !strings.Contains(u.Email, "@"):
		return u, fmt.Errorf("a valid email is required")
	case len(u.Password) < 6:
		return u, fmt.Errorf("password must be at least 6 characters")
	}
	return u, nil
}
