package service

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
)

// DashboardStats are the headline numbers on the dashboard. Revenue here is
// MRR: each active or renewal plan contributes its monthly-equivalent value.
type DashboardStats struct {
	Total   int     `json:"total"`
	Active  int     `json:"active"`
	Renewal int     `json:"renewal"`
	MRR     float64 `json:"mrr"`
}

// MonthlySales is one bar of the yearly sales chart.
type MonthlySales struct {
	Month   int     `json:"month"` // 1..12
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// YearlyFinance is the sales view for one calendar year, keyed by each
// student's entry date. Values are raw plan values, never cadence-normalized:
// this measures one-time sale events, not recurring load.
type YearlyFinance struct {
	Year          int            `json:"year"`
	Months        []MonthlySales `json:"months"`
	TotalRevenue  float64        `json:"totalRevenue"`
	TotalSales    int            `json:"totalSales"`
	AverageTicket float64        `json:"averageTicket"`
}

var monthLabels = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// DashboardService derives financial figures from the student collection.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	YearlyFinance(ctx context.Context, year int) (*YearlyFinance, error)
}

type dashboardService struct {
	studentRepo repository.StudentRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(studentRepo repository.StudentRepository) DashboardService {
	return &dashboardService{studentRepo: studentRepo}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	students, err := s.studentRepo.GetAll(ctx, repository.StudentFilter{})
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(students)
	return &stats, nil
}

func (s *dashboardService) YearlyFinance(ctx context.Context, year int) (*YearlyFinance, error) {
	students, err := s.studentRepo.GetAll(ctx, repository.StudentFilter{})
	if err != nil {
		return nil, err
	}
	finance := ComputeYearlyFinance(students, year)
	return &finance, nil
}

// ComputeStats counts students per membership status and sums MRR over the
// active and renewal ones.
func ComputeStats(students []domain.Student) DashboardStats {
	stats := DashboardStats{Total: len(students)}
	for i := range students {
		switch students[i].Status {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusRenewal:
			stats.Renewal++
		}
		if students[i].CountsTowardMRR() {
			stats.MRR += students[i].MonthlyValue()
		}
	}
	return stats
}

// ComputeYearlyFinance buckets raw plan values by entry month for the given
// year. Students who entered in another year contribute nothing. The average
// ticket is zero when the year has no sales.
func ComputeYearlyFinance(students []domain.Student, year int) YearlyFinance {
	finance := YearlyFinance{
		Year:   year,
		Months: make([]MonthlySales, 12),
	}
	for i := range finance.Months {
		finance.Months[i] = MonthlySales{Month: i + 1, Label: monthLabels[i]}
	}

	for i := range students {
		entry := students[i].EntryDate
		if entry.IsZero() || entry.Year() != year {
			continue
		}
		m := &finance.Months[int(entry.Month())-1]
		m.Revenue += students[i].PlanValue
		m.Count++
		finance.TotalRevenue += students[i].PlanValue
		finance.TotalSales++
	}

	if finance.TotalSales > 0 {
		finance.AverageTicket = finance.TotalRevenue / float64(finance.TotalSales)
	}
	return finance
}
