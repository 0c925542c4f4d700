package day

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestOf_TruncatesToMidnight(t *testing.T) {
	d := Of(time.Date(2026, 3, 14, 21, 45, 10, 5, time.UTC))
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
		t.Errorf("Of() kept a time component: %v", d.Time)
	}
	if d.String() != "2026-03-14" {
		t.Errorf("String() = %s, want 2026-03-14", d)
	}
}

func TestAddDays_CrossesMonthBoundary(t *testing.T) {
	d, err := Parse("2026-03-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := d.AddDays(-1).String(); got != "2026-02-28" {
		t.Errorf("AddDays(-1) = %s, want 2026-02-28", got)
	}
}

func TestDate_JSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-10-17"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-10-17"` {
		t.Errorf("marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`"17/10/2026"`), &d); err == nil {
		t.Error("expected error for non ISO date")
	}
}

// TestOf_MatchesScannedDate checks a clock date west of UTC and the same
// date scanned from Postgres are equal instants.
func TestOf_MatchesScannedDate(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*3600)
	cases := []struct {
		name string
		now  time.Time
	}{
		{"utc-5 evening", time.Date(2026, 10, 17, 22, 0, 0, 0, west)},
		{"utc-5 morning", time.Date(2026, 10, 17, 1, 0, 0, 0, west)},
		{"utc+9 morning", time.Date(2026, 10, 17, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var scanned Date
			if err := scanned.ScanDate(pgtype.Date{Time: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), Valid: true}); err != nil {
				t.Fatalf("scan: %v", err)
			}
			got := Of(tc.now)
			if got.String() != "2026-10-17" {
				t.Errorf("Of() = %s, want 2026-10-17", got)
			}
			if !got.Equal(scanned.Time) {
				t.Errorf("Of() = %v, scanned = %v", got.Time, scanned.Time)
			}
		})
	}
}
