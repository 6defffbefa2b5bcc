package service

import (
	"coachdesk/coach-console/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsMRR(t *testing.T) {
	students := []domain.Student{
		{Status: domain.StatusActive, PlanValue: 150, PlanType: domain.PlanMonthly},
		{Status: domain.StatusRenewal, PlanValue: 600, PlanType: domain.PlanSemiannual},
		{Status: domain.StatusInactive, PlanValue: 1000, PlanType: domain.PlanMonthly},
	}

	stats := ComputeStats(students)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Renewal)
	// 150 (monthly) + 600/6 (semiannual); the inactive student is excluded.
	assert.Equal(t, 250.0, stats.MRR)
}

func TestComputeStatsCadenceNormalization(t *testing.T) {
	tests := []struct {
		planType domain.PlanType
		value    float64
		want     float64
	}{
		{domain.PlanMonthly, 150, 150},
		{domain.PlanBimonthly, 200, 100},
		{domain.PlanSemiannual, 600, 100},
		{"", 120, 120},          // missing cadence defaults to monthly
		{"quarterly", 300, 300}, // unrecognized cadence defaults to monthly
	}

	for _, tt := range tests {
		stats := ComputeStats([]domain.Student{
			{Status: domain.StatusActive, PlanValue: tt.value, PlanType: tt.planType},
		})
		assert.Equal(t, tt.want, stats.MRR, "planType=%q", tt.planType)
	}
}

func TestComputeYearlyFinance(t *testing.T) {
	march := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	october := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	otherYear := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	students := []domain.Student{
		// Yearly sales use raw plan values even for long cadences.
		{Status: domain.StatusActive, EntryDate: march, PlanValue: 600, PlanType: domain.PlanSemiannual},
		{Status: domain.StatusInactive, EntryDate: march, PlanValue: 100, PlanType: domain.PlanMonthly},
		{Status: domain.StatusActive, EntryDate: october, PlanValue: 200, PlanType: domain.PlanBimonthly},
		{Status: domain.StatusActive, EntryDate: otherYear, PlanValue: 999},
	}

	finance := ComputeYearlyFinance(students, 2025)

	assert.Equal(t, 2025, finance.Year)
	assert.Len(t, finance.Months, 12)

	marchSales := finance.Months[2]
	assert.Equal(t, 3, marchSales.Month)
	assert.Equal(t, "mar", marchSales.Label)
	assert.Equal(t, 700.0, marchSales.Revenue)
	assert.Equal(t, 2, marchSales.Count)

	assert.Equal(t, 200.0, finance.Months[9].Revenue)
	assert.Equal(t, 900.0, finance.TotalRevenue)
	assert.Equal(t, 3, finance.TotalSales)
	assert.Equal(t, 300.0, finance.AverageTicket)

	// The 2024 entry contributes nothing anywhere.
	for _, m := range finance.Months {
		assert.LessOrEqual(t, m.Revenue, 700.0)
	}
}

func TestComputeYearlyFinanceEmptyYear(t *testing.T) {
	students := []domain.Student{
		{Status: domain.StatusActive, EntryDate: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), PlanValue: 150},
	}

	finance := ComputeYearlyFinance(students, 2025)

	assert.Equal(t, 0.0, finance.TotalRevenue)
	assert.Equal(t, 0, finance.TotalSales)
	assert.Equal(t, 0.0, finance.AverageTicket, "average ticket is defined as 0 when there are no sales")
}
