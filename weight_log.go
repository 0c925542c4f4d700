package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/day"
)

// logWeight appends a weight entry, keeps the profile weight current and runs
// the safety monitor.
// POST /api/log/weight. Body: { "weight_kg", "date"? }.
func (h *Handler) logWeight(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		WeightKG float64 `json:"weight_kg"`
		Date     string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > 700 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 700")
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

	var entry weightEntry
	err := pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(c,
			"UPDATE user_profiles SET weight_kg = @weightKG, updated_at = now() WHERE user_id = @userID",
			pgx.NamedArgs{"weightKG": body.WeightKG, "userID": userID}); err != nil {
			return err
		}
		rows, err := tx.Query(c,
			`INSERT INTO weight_log (user_id, date, weight_kg)
			 VALUES (@userID, @date, @weightKG)
			 RETURNING *`,
			pgx.NamedArgs{"userID": userID, "date": date.String(), "weightKG": body.WeightKG})
		if err != nil {
			return err
		}
		entry, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[weightEntry])
		return err
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("[logWeight] write failed")
		apiError(c, http.StatusInternalServerError, "failed to log weight")
		return
	}

	// The entry is stored either way; a failed check is retried on the next
	// alerts fetch.
	alerts, err := h.alerts.Evaluate(c, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("[logWeight] safety check failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Weight updated",
		"entry":            entry,
		"alerts_generated": len(alerts),
	})
}

// getWeightLog returns weight entries for the authenticated user within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	start, end, ok := parseRange(c)
	if !ok {
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC, id ASC`,
		pgx.NamedArgs{"userID": userID, "start": start.String(), "end": end.String()})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// parseRange reads the required start and end query params, writing a 400
// and returning ok=false when they are missing or invalid.
func parseRange(c *gin.Context) (start, end day.Date, ok bool) {
	s, e := c.Query("start"), c.Query("end")
	if s == "" || e == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return start, end, false
	}
	start, err := day.Parse(s)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return start, end, false
	}
	end, err = day.Parse(e)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return start, end, false
	}
	if start.After(end.Time) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return start, end, false
	}
	return start, end, true
}
