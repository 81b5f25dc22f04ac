package services

import (
	"fmt"
	"strings"

	"estate-crm/models"
	"estate-crm/utils"
)

// Summary holds the headline numbers shown on the dashboard.
type Summary struct {
	TotalListings  int
	ForSale        int
	ForRent        int
	TotalClients   int
	PendingTasks   int
	PortfolioValue int64
	ValueMillions  float64
	// GoalProgress is PortfolioValue over the configured sales goal,
	// clamped to [0, 1].
	GoalProgress float64
}

// Dashboard computes portfolio statistics over the full record sets.
type Dashboard struct {
	logger *utils.Logger
	goal   int64
}

// NewDashboard creates a Dashboard with the given yearly sales goal.
func NewDashboard(logger *utils.Logger, goal int64) *Dashboard {
	return &Dashboard{logger: logger, goal: goal}
}

// Generate aggregates the record sets into a Summary. Prices are already
// canonical integers at this point; rows whose price failed normalization
// contribute 0 and simply dilute the total instead of failing it.
func (d *Dashboard) Generate(listings []*models.Listing, clients []*models.Client, tasks []*models.Task) *Summary {
	s := &Summary{
		TotalListings: len(listings),
		TotalClients:  len(clients),
	}

	for _, l := range listings {
		s.PortfolioValue += l.Price
		switch l.Status {
		case models.StatusForSale:
			s.ForSale++
		case models.StatusForRent:
			s.ForRent++
		}
	}
	for _, t := range tasks {
		if t.Status == models.TaskPending {
			s.PendingTasks++
		}
	}

	s.ValueMillions = float64(s.PortfolioValue) / 1_000_000
	if d.goal > 0 {
		s.GoalProgress = float64(s.PortfolioValue) / float64(d.goal)
		if s.GoalProgress > 1 {
			s.GoalProgress = 1
		}
	}

	return s
}

// Print renders the summary to stdout.
func (d *Dashboard) Print(s *Summary) {
	sep := strings.Repeat("═", 46)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  PORTFOLIO DASHBOARD\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("  Listings        : \033[1m%d\033[0m (%d for sale, %d for rent)\n",
		s.TotalListings, s.ForSale, s.ForRent)
	fmt.Printf("  Clients         : \033[1m%d\033[0m\n", s.TotalClients)
	fmt.Printf("  Pending tasks   : \033[1m%d\033[0m\n", s.PendingTasks)
	fmt.Printf("  Portfolio value : \033[1;32m%.1f M\033[0m\n", s.ValueMillions)

	bar := int(s.GoalProgress * 30)
	fmt.Printf("  Sales goal      : [%s%s] %.0f%%\n",
		strings.Repeat("█", bar), strings.Repeat("░", 30-bar), s.GoalProgress*100)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
