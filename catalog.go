package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// pgCatalog reads food_items and portion_sizes. Portions keep insertion
// order so the first one stays the default serving.
type pgCatalog struct {
	db *pgxpool.Pool
}

const foodColumns = "id, name, calories_100g, protein_100g, carbs_100g, fat_100g, sugar_100g"

// one runs a single-food query and attaches its portions. No row is (nil, nil).
func (pc pgCatalog) one(ctx context.Context, where string, args pgx.NamedArgs) (*nutrition.Food, error) {
	f, err := queryOne[nutrition.Food](pc.db, ctx,
		"SELECT "+foodColumns+" FROM food_items WHERE "+where+" ORDER BY id LIMIT 1", args)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	portions, err := queryMany[portionRow](pc.db, ctx,
		"SELECT * FROM portion_sizes WHERE food_id = @foodID ORDER BY id",
		pgx.NamedArgs{"foodID": f.ID})
	if err != nil {
		return nil, err
	}
	for _, p := range portions {
		f.Portions = append(f.Portions, nutrition.Portion{ID: p.ID, Name: p.Name, WeightG: p.WeightG})
	}
	return &f, nil
}

func (pc pgCatalog) FoodByID(ctx context.Context, id int) (*nutrition.Food, error) {
	return pc.one(ctx, "id = @id", pgx.NamedArgs{"id": id})
}

func (pc pgCatalog) FoodByName(ctx context.Context, name string) (*nutrition.Food, error) {
	return pc.one(ctx, "name = @name", pgx.NamedArgs{"name": name})
}

func (pc pgCatalog) FirstNameContaining(ctx context.Context, term string) (*nutrition.Food, error) {
	return pc.one(ctx, "strpos(lower(name), lower(@term)) > 0", pgx.NamedArgs{"term": term})
}

func (pc pgCatalog) All(ctx context.Context) ([]nutrition.Food, error) {
	foods, err := queryMany[nutrition.Food](pc.db, ctx,
		"SELECT "+foodColumns+" FROM food_items ORDER BY id", nil)
	if err != nil {
		return nil, err
	}
	portions, err := queryMany[portionRow](pc.db, ctx,
		"SELECT * FROM portion_sizes ORDER BY food_id, id", nil)
	if err != nil {
		return nil, err
	}

	byFood := make(map[int][]nutrition.Portion, len(foods))
	for _, p := range portions {
		byFood[p.FoodID] = append(byFood[p.FoodID], nutrition.Portion{ID: p.ID, Name: p.Name, WeightG: p.WeightG})
	}
	for i := range foods {
		foods[i].Portions = byFood[foods[i].ID]
	}
	return foods, nil
}

// listFoods returns the catalog with portions.
// GET /api/foods.
func (h *Handler) listFoods(c *gin.Context) {
	foods, err := h.foods.All(c)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch foods")
		return
	}
	if foods == nil {
		foods = []nutrition.Food{}
	}
	for i := range foods {
		if foods[i].Portions == nil {
			foods[i].Portions = []nutrition.Portion{}
		}
	}
	c.JSON(http.StatusOK, foods)
}
