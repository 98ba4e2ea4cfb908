package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Mikayuko/projectbingsu/internal/platform/apierr"
	"github.com/Mikayuko/projectbingsu/internal/platform/logger"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

const topItemLimit = 5

type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type DayStat struct {
	Day     string `json:"day"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type SalesReport struct {
	From           time.Time              `json:"from"`
	To             time.Time              `json:"to"`
	TotalOrders    int64                  `json:"total_orders"`
	Revenue        int64                  `json:"revenue"`
	CompletionRate float64                `json:"completion_rate"`
	StatusCounts   []repos.StatusCount    `json:"status_counts"`
	TopFlavors     []NameCount            `json:"top_flavors"`
	TopToppings    []NameCount            `json:"top_toppings"`
	PeakHours      []HourCount            `json:"peak_hours"`
	Daily          []DayStat              `json:"daily"`
	Reviews        *repos.ReviewAggregate `json:"reviews"`
}

type ReportService interface {
	Sales(ctx context.Context, from, to time.Time) (*SalesReport, error)
}

type reportService struct {
	db         *gorm.DB
	log        *logger.Logger
	orderRepo  repos.OrderRepo
	reviewRepo repos.ReviewRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo, reviewRepo repos.ReviewRepo) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{db: db, log: serviceLog, orderRepo: orderRepo, reviewRepo: reviewRepo}
}

// Sales fans the independent aggregate queries out and folds the order rows
// into the grouped stats in memory.
func (rs *reportService) Sales(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	if !to.After(from) {
		return nil, apierr.BadRequest("invalid_window", fmt.Errorf("report window end must be after start"))
	}

	var (
		orders       []*types.Order
		statusCounts []repos.StatusCount
		reviews      *repos.ReviewAggregate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = rs.orderRepo.ListCreatedBetween(gctx, nil, from, to)
		if err != nil {
			return fmt.Errorf("failed to load orders for report: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		statusCounts, err = rs.orderRepo.CountByStatus(gctx, nil, from, to)
		if err != nil {
			return fmt.Errorf("failed to count orders by status: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reviews, err = rs.reviewRepo.Aggregate(gctx, nil)
		if err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := buildSalesReport(from, to, orders, statusCounts)
	report.Reviews = reviews
	return report, nil
}

func buildSalesReport(from, to time.Time, orders []*types.Order, statusCounts []repos.StatusCount) *SalesReport {
	report := &SalesReport{
		From:         from,
		To:           to,
		TotalOrders:  int64(len(orders)),
		StatusCounts: statusCounts,
	}

	flavorCounts := make(map[string]int64)
	toppingCounts := make(map[string]int64)
	hourCounts := make(map[int]int64)
	dayStats := make(map[string]*DayStat)

	for _, o := range orders {
		if o.Status != types.OrderStatusCancelled {
			report.Revenue += o.TotalPrice
		}
		flavorCounts[o.FlavorName]++
		hourCounts[o.CreatedAt.Hour()]++

		day := o.CreatedAt.Format("2006-01-02")
		ds, ok := dayStats[day]
		if !ok {
			ds = &DayStat{Day: day}
			dayStats[day] = ds
		}
		ds.Orders++
		if o.Status != types.OrderStatusCancelled {
			ds.Revenue += o.TotalPrice
		}

		var toppings []types.ToppingSnapshot
		if len(o.Toppings) > 0 {
			if err := json.Unmarshal(o.Toppings, &toppings); err == nil {
				for _, t := range toppings {
					toppingCounts[t.Name]++
				}
			}
		}
	}

	var completed, terminal int64
	for _, sc := range statusCounts {
		switch sc.Status {
		case types.OrderStatusCompleted:
			completed += sc.Count
			terminal += sc.Count
		case types.OrderStatusCancelled:
			terminal += sc.Count
		}
	}
	if terminal > 0 {
		report.CompletionRate = float64(completed) / float64(terminal)
	}

	report.TopFlavors = topCounts(flavorCounts, topItemLimit)
	report.TopToppings = topCounts(toppingCounts, topItemLimit)

	for hour, count := range hourCounts {
		report.PeakHours = append(report.PeakHours, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(report.PeakHours, func(i, j int) bool {
		if report.PeakHours[i].Count != report.PeakHours[j].Count {
			return report.PeakHours[i].Count > report.PeakHours[j].Count
		}
		return report.PeakHours[i].Hour < report.PeakHours[j].Hour
	})

	for _, ds := range dayStats {
		report.Daily = append(report.Daily, *ds)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Day < report.Daily[j].Day
	})

	return report
}

func topCounts(counts map[string]int64, limit int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
