package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
	"github.com/saivarshithnaidu/nutrilens-back-end/internal/nutrition"
)

// createMealLog records an eaten meal. Catalog meals derive their macros from
// the per-100g values scaled by the portion; free-text meals carry their own.
// POST /api/meals.
func (h *Handler) createMealLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createMealLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date := h.today()
	if body.Date != "" {
		d, err := day.Parse(body.Date)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = d
	}
	if body.PortionConsumedG < 0 {
		apiError(c, http.StatusBadRequest, "portion_consumed_g must not be negative")
		return
	}

	name := strings.TrimSpace(body.FoodName)
	grams := body.PortionConsumedG
	m := nutrition.Macros{
		Calories: body.Calories,
		ProteinG: body.ProteinG,
		CarbsG:   body.CarbsG,
		FatG:     body.FatG,
		SugarG:   body.SugarG,
	}

	if body.FoodID != nil {
		food, err := h.foods.FoodByID(c, *body.FoodID)
		if err != nil {
			apiError(c, http.StatusInternalServerError, "failed to fetch food")
			return
		}
		if food == nil {
			apiError(c, http.StatusNotFound, "food not found")
			return
		}
		if grams == 0 {
			grams = food.DefaultPortion().WeightG
		}
		name = food.Name
		m = food.ForPortion(grams)
	} else {
		if name == "" {
			apiError(c, http.StatusBadRequest, "food_name is required without food_id")
			return
		}
		if m.Calories < 0 || m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 || m.SugarG < 0 {
			apiError(c, http.StatusBadRequest, "nutrition values must not be negative")
			return
		}
	}

	item, err := queryOne[mealLog](h.db, c,
		`INSERT INTO daily_logs
			(user_id, food_id, food_name, date, portion_consumed_g, calories, protein_g, carbs_g, fat_g, sugar_g)
		 VALUES
			(@userID, @foodID, @foodName, @date, @grams, @calories, @protein, @carbs, @fat, @sugar)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"foodID":   body.FoodID,
			"foodName": name,
			"date":     date.String(),
			"grams":    grams,
			"calories": m.Calories,
			"protein":  m.ProteinG,
			"carbs":    m.CarbsG,
			"fat":      m.FatG,
			"sugar":    m.SugarG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create meal log")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// getDailyMeals returns a day's meals and their totals.
// GET /api/meals/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailyMeals(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", h.today().String())

	// An invalid date would silently return no rows.
	if _, err := day.Parse(date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[mealLog](h.db, c,
		`SELECT * FROM daily_logs
		 WHERE user_id = @userID AND date = @date
		 ORDER BY logged_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch meals")
		return
	}

	c.JSON(http.StatusOK, summarizeMeals(date, items))
}

// summarizeMeals totals the macros of a day's items.
func summarizeMeals(date string, items []mealLog) dailyMeals {
	out := dailyMeals{Date: date, Items: items}
	if out.Items == nil {
		out.Items = []mealLog{}
	}
	for _, it := range items {
		out.Calories += it.Calories
		out.ProteinG += it.ProteinG
		out.CarbsG += it.CarbsG
		out.FatG += it.FatG
		out.SugarG += it.SugarG
	}
	return out
}

// consumedOn sums the calories logged by the user on date.
func (h *Handler) consumedOn(ctx context.Context, userID int, date day.Date) (float64, error) {
	var total float64
	err := h.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(calories), 0) FROM daily_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date.String()}).Scan(&total)
	return total, err
}

// deleteMealLog removes a meal log entry by ID.
// DELETE /api/meals/:id. Returns 204 on success, 404 if not found.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteMealLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM daily_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete meal log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "meal log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
