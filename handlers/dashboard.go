// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"sort"
	"time"

	"membertrack-server/membership"
	"membertrack-server/models"
)

// The dashboard aggregations are pure passes over the loaded member
// set, the same shape as the original system's dataframe passes. They
// take an explicit "today" so they stay deterministic under test.

// swagger:model Metrics
type Metrics struct {
	Total   int `json:"total" example:"42"`
	Active  int `json:"active" example:"30"`
	Expired int `json:"expired" example:"10"`
	Unknown int `json:"unknown" example:"2"`
	// Percentage of the (filtered) member set that is active
	RetentionRate float64 `json:"retention_rate" example:"71.4"`
	// Members whose start date falls in the current calendar month
	NewSignups int `json:"new_signups" example:"4"`
	// New signups this month minus last month's
	SignupsDelta int `json:"signups_delta" example:"1"`
}

// swagger:model PlanCount
type PlanCount struct {
	Plan  string `json:"plan" example:"Silver"`
	Count int    `json:"count" example:"12"`
}

// swagger:model MonthCount
type MonthCount struct {
	// First day of the bucket month
	Month string `json:"month" example:"2026-01-01"`
	Count int    `json:"count" example:"5"`
}

// swagger:model RetentionPoint
type RetentionPoint struct {
	// Month-end sample date
	Month     string  `json:"month" example:"2026-01-31"`
	Retention float64 `json:"retention" example:"82.5"`
	Churn     float64 `json:"churn" example:"17.5"`
}

func computeMetrics(members []models.Member, today time.Time) Metrics {
	m := Metrics{Total: len(members)}
	for _, member := range members {
		switch member.Status {
		case membership.StatusActive:
			m.Active++
		case membership.StatusExpired:
			m.Expired++
		default:
			m.Unknown++
		}
	}
	if m.Total > 0 {
		m.RetentionRate = float64(m.Active) / float64(m.Total) * 100
	}

	lastMonth := today.AddDate(0, 0, -today.Day()) // last day of the previous month
	lastMonthCount := 0
	for _, member := range members {
		if member.StartDate == nil {
			continue
		}
		sy, sm, _ := member.StartDate.Date()
		ty, tm, _ := today.Date()
		if sy == ty && sm == tm {
			m.NewSignups++
		}
		ly, lm, _ := lastMonth.Date()
		if sy == ly && sm == lm {
			lastMonthCount++
		}
	}
	m.SignupsDelta = m.NewSignups - lastMonthCount
	return m
}

func planDistribution(members []models.Member) []PlanCount {
	counts := map[string]int{}
	for _, m := range members {
		counts[m.PlanType]++
	}
	out := make([]PlanCount, 0, len(counts))
	for plan, count := range counts {
		out = append(out, PlanCount{Plan: plan, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Plan < out[j].Plan
	})
	return out
}

// monthlyRenewals buckets end dates from the last twelve months by
// calendar month. Future end dates count too; they are upcoming
// renewals, which is what the chart is for.
func monthlyRenewals(members []models.Member, today time.Time) []MonthCount {
	cutoff := today.AddDate(0, 0, -365)
	counts := map[time.Time]int{}
	for _, m := range members {
		if m.EndDate == nil || m.EndDate.Before(cutoff) {
			continue
		}
		y, mo, _ := m.EndDate.Date()
		bucket := time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC)
		counts[bucket]++
	}
	months := make([]time.Time, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	out := make([]MonthCount, 0, len(months))
	for _, month := range months {
		out = append(out, MonthCount{
			Month: month.Format("2006-01-02"),
			Count: counts[month],
		})
	}
	return out
}

// retentionTrend samples the member set at each month-end of the last
// twelve months. At each sample: of the members already started by
// then, the share still active (end date on or past the sample) is the
// retention percentage, its complement the churn.
func retentionTrend(members []models.Member, today time.Time) []RetentionPoint {
	start := today.AddDate(0, 0, -365)
	var out []RetentionPoint
	for sample := endOfMonth(start); !sample.After(today); sample = endOfMonth(sample.AddDate(0, 0, 1)) {
		totalAt := 0
		activeAt := 0
		for _, m := range members {
			if m.StartDate == nil || m.StartDate.After(sample) {
				continue
			}
			totalAt++
			if m.EndDate != nil && !m.EndDate.Before(sample) {
				activeAt++
			}
		}
		point := RetentionPoint{Month: sample.Format("2006-01-02")}
		if totalAt > 0 {
			point.Retention = float64(activeAt) / float64(totalAt) * 100
			point.Churn = 100 - point.Retention
		}
		out = append(out, point)
	}
	return out
}

func endOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
}
