// SPDX-License-Identifier: GPL-3.0-only

package membership

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	today := date(2026, time.March, 15)

	yesterday := today.AddDate(0, 0, -1)
	if got := DeriveStatus(&yesterday, today); got != StatusExpired {
		t.Errorf("Expected Expired for end date yesterday, got %s", got)
	}

	if got := DeriveStatus(&today, today); got != StatusActive {
		t.Errorf("Expected Active for end date today, got %s", got)
	}

	tomorrow := today.AddDate(0, 0, 1)
	if got := DeriveStatus(&tomorrow, today); got != StatusActive {
		t.Errorf("Expected Active for end date tomorrow, got %s", got)
	}

	if got := DeriveStatus(nil, today); got != StatusUnknown {
		t.Errorf("Expected Unknown for missing end date, got %s", got)
	}
}

func TestDeriveStatusIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.March, 15, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := DeriveStatus(&end, today); got != StatusActive {
		t.Errorf("End date on the same calendar day should be Active, got %s", got)
	}
}

func TestDeriveStatusIsIdempotent(t *testing.T) {
	today := date(2026, time.March, 15)
	end := date(2026, time.January, 1)
	first := DeriveStatus(&end, today)
	second := DeriveStatus(&end, today)
	if first != second {
		t.Errorf("DeriveStatus not stable: %s then %s", first, second)
	}
}

func TestPlanEndDate(t *testing.T) {
	cases := []struct {
		name    string
		start   time.Time
		plan    string
		catalog map[string]int
		want    time.Time
	}{
		{
			name:    "day clamps in short month",
			start:   date(2024, time.January, 31),
			plan:    "Bronze",
			catalog: map[string]int{"Bronze": 1},
			want:    date(2024, time.February, 28),
		},
		{
			name:    "plain nine month plan",
			start:   date(2023, time.January, 15),
			plan:    "Gold",
			catalog: map[string]int{"Gold": 9},
			want:    date(2023, time.October, 15),
		},
		{
			name:    "unknown plan defaults to twelve months",
			start:   date(2024, time.January, 1),
			plan:    "Nonexistent",
			catalog: map[string]int{"Bronze": 3},
			want:    date(2025, time.January, 1),
		},
		{
			name:    "year rollover",
			start:   date(2024, time.November, 10),
			plan:    "Bronze",
			catalog: map[string]int{"Bronze": 3},
			want:    date(2025, time.February, 10),
		},
		{
			name:    "december start twelve months",
			start:   date(2024, time.December, 1),
			plan:    "Platinum",
			catalog: map[string]int{"Platinum": 12},
			want:    date(2025, time.December, 1),
		},
		{
			name:    "clamp does not touch leap day target",
			start:   date(2023, time.February, 28),
			plan:    "Platinum",
			catalog: map[string]int{"Platinum": 12},
			want:    date(2024, time.February, 28),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PlanEndDate(tc.start, tc.plan, tc.catalog)
			if !got.Equal(tc.want) {
				t.Errorf("PlanEndDate(%s, %s) = %s, want %s",
					tc.start.Format(DateFormat), tc.plan,
					got.Format(DateFormat), tc.want.Format(DateFormat))
			}
		})
	}
}

func TestPlanEndDateDayNeverExceeds28(t *testing.T) {
	catalog := map[string]int{"P": 0}
	for day := 1; day <= 31; day++ {
		start := date(2024, time.January, day)
		for months := 0; months <= 24; months++ {
			catalog["P"] = months
			got := PlanEndDate(start, "P", catalog)
			if got.Day() > 28 {
				t.Fatalf("PlanEndDate(%s, %d months) landed on day %d",
					start.Format(DateFormat), months, got.Day())
			}
		}
	}
}

func TestRenewByMonths(t *testing.T) {
	got := RenewByMonths(date(2024, time.November, 30), 3)
	want := date(2025, time.February, 28)
	if !got.Equal(want) {
		t.Errorf("RenewByMonths = %s, want %s", got.Format(DateFormat), want.Format(DateFormat))
	}

	// Renewal and plan computation must clamp identically.
	fromPlan := PlanEndDate(date(2024, time.November, 30), "Q", map[string]int{"Q": 3})
	if !got.Equal(fromPlan) {
		t.Errorf("RenewByMonths and PlanEndDate disagree: %s vs %s",
			got.Format(DateFormat), fromPlan.Format(DateFormat))
	}
}

func TestGenerateMemberID(t *testing.T) {
	cases := []struct {
		existing []string
		want     string
	}{
		{[]string{"M0001", "M0003", "X9"}, "M0004"},
		{[]string{}, "M0001"},
		{nil, "M0001"},
		{[]string{"X9", "member-7", ""}, "M0001"},
		{[]string{"M9999"}, "M10000"},
		{[]string{"M7"}, "M0008"},
		{[]string{"M0002", "M0002"}, "M0003"},
	}
	for _, tc := range cases {
		if got := GenerateMemberID(tc.existing); got != tc.want {
			t.Errorf("GenerateMemberID(%v) = %s, want %s", tc.existing, got, tc.want)
		}
	}
}

func TestGenerateMemberIDIgnoresMalformedSuffixes(t *testing.T) {
	existing := []string{"M12a", "Mx", "M", "M-5", "M 3", "M0006"}
	if got := GenerateMemberID(existing); got != "M0007" {
		t.Errorf("GenerateMemberID = %s, want M0007", got)
	}
}

func TestExpiringSoon(t *testing.T) {
	today := date(2026, time.June, 1)

	in10 := today.AddDate(0, 0, 10)
	if !ExpiringSoon(&in10, today) {
		t.Error("End date 10 days out should be expiring soon")
	}

	in30 := today.AddDate(0, 0, 30)
	if !ExpiringSoon(&in30, today) {
		t.Error("End date exactly 30 days out should be expiring soon")
	}

	in31 := today.AddDate(0, 0, 31)
	if ExpiringSoon(&in31, today) {
		t.Error("End date 31 days out should not be expiring soon")
	}

	past := today.AddDate(0, 0, -5)
	if !ExpiringSoon(&past, today) {
		t.Error("Already-expired end dates stay flagged")
	}

	if ExpiringSoon(nil, today) {
		t.Error("Missing end date should never be flagged")
	}
}

func TestParseDate(t *testing.T) {
	if d, ok := ParseDate("2024-02-29"); !ok || !d.Equal(date(2024, time.February, 29)) {
		t.Errorf("ParseDate(2024-02-29) = %v, %v", d, ok)
	}
	if _, ok := ParseDate(""); ok {
		t.Error("Empty string should not parse")
	}
	if _, ok := ParseDate("31/01/2024"); ok {
		t.Error("Wrong format should not parse")
	}
	if _, ok := ParseDate("not-a-date"); ok {
		t.Error("Garbage should not parse")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "" {
		t.Errorf("FormatDate(nil) = %q, want empty", got)
	}
	d := date(2025, time.February, 28)
	if got := FormatDate(&d); got != "2025-02-28" {
		t.Errorf("FormatDate = %q", got)
	}
}
