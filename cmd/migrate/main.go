// CLI tool to run pending database migrations from db/.
// Checks the migrations table to skip already-applied files.
// Wraps each migration + record insert in a single transaction.
// Usage: go run ./cmd/migrate [--dir db]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/config"
)

var migrationsDir string

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations in name order",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		files, err := migrationFiles(migrationsDir)
		if err != nil {
			return err
		}
		ran, err := applyPending(ctx, conn, files)
		if err != nil {
			return err
		}

		if ran == 0 {
			fmt.Println("No pending migrations.")
		} else {
			color.Green("\n%d migration(s) applied.", ran)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&migrationsDir, "dir", "db", "Directory containing *.sql migrations")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("migrate: %v", err)
		os.Exit(1)
	}
}

// migrationFiles lists *.sql files in dir sorted by name.
func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func applyPending(ctx context.Context, conn *pgx.Conn, files []string) (int, error) {
	// Get already-applied migrations (table may not exist yet)
	applied := make(map[string]bool)
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err == nil {
		names, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err == nil {
			for _, n := range names {
				applied[n] = true
			}
		}
	}

	ran := 0
	for _, f := range files {
		filename := filepath.Base(f)
		if applied[filename] {
			color.New(color.Faint).Printf("  skip: %s\n", filename)
			continue
		}

		content, err := os.ReadFile(f)
		if err != nil {
			return ran, fmt.Errorf("reading %s: %w", filename, err)
		}

		err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("running %s: %w", filename, err)
			}
			if _, err := tx.Exec(ctx, "INSERT INTO migrations (migration, description) VALUES ($1, $2)",
				filename, descriptionFromFilename(filename)); err != nil {
				return fmt.Errorf("recording %s: %w", filename, err)
			}
			return nil
		})
		if err != nil {
			return ran, err
		}

		color.Green("  applied: %s", filename)
		ran++
	}
	return ran, nil
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = datePrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
