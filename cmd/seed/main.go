// CLI tool to load the reference food catalog.
// Skips when food_items already has rows unless --force is given, which
// upserts every food by name and replaces its portions.
// Usage: go run ./cmd/seed [--force]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/config"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/foodmatch"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

var force bool

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference food catalog",
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

		var existing int
		if err := conn.QueryRow(ctx, "SELECT count(*) FROM food_items").Scan(&existing); err != nil {
			return fmt.Errorf("counting foods: %w", err)
		}
		if existing > 0 && !force {
			color.Yellow("food_items already has %d rows, skipping (use --force to reseed)", existing)
			return nil
		}

		foods := foodmatch.SeedFoods()
		err = pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			for _, f := range foods {
				if err := upsertFood(ctx, tx, f); err != nil {
					return fmt.Errorf("seeding %s: %w", f.Name, err)
				}
				fmt.Printf("  seeded: %s (%d portions)\n", f.Name, len(f.Portions))
			}
			return nil
		})
		if err != nil {
			return err
		}

		color.Green("\n%d foods seeded.", len(foods))
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&force, "force", false, "Reseed even when the catalog is populated")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.Red("seed: %v", err)
		os.Exit(1)
	}
}

// upsertFood writes one food and replaces its portions, keeping their order.
func upsertFood(ctx context.Context, tx pgx.Tx, f nutrition.Food) error {
	var id int
	err := tx.QueryRow(ctx,
		`INSERT INTO food_items (name, calories_100g, protein_100g, carbs_100g, fat_100g, sugar_100g)
		 VALUES (@name, @calories, @protein, @carbs, @fat, @sugar)
		 ON CONFLICT (name) DO UPDATE SET
			calories_100g = EXCLUDED.calories_100g,
			protein_100g  = EXCLUDED.protein_100g,
			carbs_100g    = EXCLUDED.carbs_100g,
			fat_100g      = EXCLUDED.fat_100g,
			sugar_100g    = EXCLUDED.sugar_100g
		 RETURNING id`,
		pgx.NamedArgs{
			"name":     f.Name,
			"calories": f.Calories100,
			"protein":  f.Protein100,
			"carbs":    f.Carbs100,
			"fat":      f.Fat100,
			"sugar":    f.Sugar100,
		}).Scan(&id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM portion_sizes WHERE food_id = $1", id); err != nil {
		return err
	}
	for _, p := range f.Portions {
		if _, err := tx.Exec(ctx,
			"INSERT INTO portion_sizes (food_id, portion_name, weight_g) VALUES ($1, $2, $3)",
			id, p.Name, p.WeightG); err != nil {
			return err
		}
	}
	return nil
}
