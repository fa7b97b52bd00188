package services

import (
	"context"
	"math"
	"sort"
	"time"

	"oh-crepe-api/models"
	"oh-crepe-api/repository"
	"oh-crepe-api/statemachine"

	"github.com/shopspring/decimal"
)

const topSellingLimit = 4

type PeriodSummary struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopItem struct {
	MenuItemID uint            `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type DayRevenue struct {
	Date    string          `json:"date"`
	DayName string          `json:"day_name"`
	Revenue decimal.Decimal `json:"revenue"`
}

type UserSummary struct {
	Total     int `json:"total"`
	Customers int `json:"customers"`
	Staff     int `json:"staff"`
	Admins    int `json:"admins"`
}

type MenuSummary struct {
	TotalItems         int     `json:"total_items"`
	AvailableItems     int     `json:"available_items"`
	AvailabilityRate   float64 `json:"availability_rate"`
	AveragePrepMinutes float64 `json:"average_prep_minutes"`
}

// Dashboard is the admin overview. Revenue figures count delivered orders only.
type Dashboard struct {
	GeneratedAt       time.Time                  `json:"generated_at"`
	Today             PeriodSummary              `json:"today"`
	Week              PeriodSummary              `json:"week"`
	Month             PeriodSummary              `json:"month"`
	AverageOrderValue decimal.Decimal            `json:"average_order_value"`
	PendingOrders     int                        `json:"pending_orders"`
	ActiveOrders      int                        `json:"active_orders"`
	CompletionRate    float64                    `json:"completion_rate"`
	OrdersByStatus    map[models.OrderStatus]int `json:"orders_by_status"`
	TopSellingItems   []TopItem                  `json:"top_selling_items"`
	RevenueTrend      []DayRevenue               `json:"revenue_trend"`
	Users             UserSummary                `json:"users"`
	Menu              MenuSummary                `json:"menu"`
}

const dayLayout = "2006-01-02"

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

// BuildDashboard aggregates already-loaded rows as of now. Day boundaries use
// now's location.
func BuildDashboard(orders []models.Order, users []models.User, menu []models.MenuItem, now time.Time) *Dashboard {
	loc := now.Location()
	today := startOfDay(now)
	weekStart := startOfDay(now.AddDate(0, 0, -7))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	trendStart := today.AddDate(0, 0, -6)

	d := &Dashboard{
		GeneratedAt:       now,
		Today:             PeriodSummary{Revenue: decimal.Zero},
		Week:              PeriodSummary{Revenue: decimal.Zero},
		Month:             PeriodSummary{Revenue: decimal.Zero},
		AverageOrderValue: decimal.Zero,
		OrdersByStatus:    make(map[models.OrderStatus]int),
		TopSellingItems:   []TopItem{},
	}

	trend := make([]DayRevenue, 7)
	trendIndex := make(map[string]int, len(trend))
	for i := range trend {
		day := trendStart.AddDate(0, 0, i)
		trend[i] = DayRevenue{Date: day.Format(dayLayout), DayName: day.Format("Mon"), Revenue: decimal.Zero}
		trendIndex[trend[i].Date] = i
	}

	top := map[uint]*TopItem{}
	billable := decimal.Zero
	billableCount := 0
	delivered := 0

	for _, o := range orders {
		d.OrdersByStatus[o.Status]++
		if o.Status == models.StatusPending {
			d.PendingOrders++
		}
		if statemachine.IsActive(o.Status) {
			d.ActiveOrders++
		}
		if o.Status != models.StatusCancelled {
			billable = billable.Add(o.TotalAmount)
			billableCount++
		}
		if o.Status != models.StatusDelivered {
			continue
		}
		delivered++

		created := o.CreatedAt.In(loc)
		if !created.Before(today) {
			d.Today.Orders++
			d.Today.Revenue = d.Today.Revenue.Add(o.TotalAmount)
		}
		if !created.Before(monthStart) {
			d.Month.Orders++
			d.Month.Revenue = d.Month.Revenue.Add(o.TotalAmount)
		}
		if idx, ok := trendIndex[created.Format(dayLayout)]; ok {
			trend[idx].Revenue = trend[idx].Revenue.Add(o.TotalAmount)
		}
		if created.Before(weekStart) {
			continue
		}
		d.Week.Orders++
		d.Week.Revenue = d.Week.Revenue.Add(o.TotalAmount)
		for _, it := range o.Items {
			t, ok := top[it.MenuItemID]
			if !ok {
				t = &TopItem{MenuItemID: it.MenuItemID, Name: it.MenuItemName, Revenue: decimal.Zero}
				top[it.MenuItemID] = t
			}
			t.Quantity += it.Quantity
			t.Revenue = t.Revenue.Add(it.LineTotal())
		}
	}

	if billableCount > 0 {
		d.AverageOrderValue = billable.Div(decimal.NewFromInt(int64(billableCount))).Round(2)
	}
	d.CompletionRate = percent(delivered, len(orders))
	d.RevenueTrend = trend

	for _, t := range top {
		d.TopSellingItems = append(d.TopSellingItems, *t)
	}
	sort.Slice(d.TopSellingItems, func(i, j int) bool {
		a, b := d.TopSellingItems[i], d.TopSellingItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	if len(d.TopSellingItems) > topSellingLimit {
		d.TopSellingItems = d.TopSellingItems[:topSellingLimit]
	}

	for _, u := range users {
		d.Users.Total++
		switch u.Role {
		case models.RoleCustomer:
			d.Users.Customers++
		case models.RoleStaff:
			d.Users.Staff++
		case models.RoleAdmin:
			d.Users.Admins++
		}
	}

	prep := 0
	for _, m := range menu {
		d.Menu.TotalItems++
		prep += m.PreparationTime
		if m.Available {
			d.Menu.AvailableItems++
		}
	}
	d.Menu.AvailabilityRate = percent(d.Menu.AvailableItems, d.Menu.TotalItems)
	if d.Menu.TotalItems > 0 {
		d.Menu.AveragePrepMinutes = math.Round(float64(prep)/float64(d.Menu.TotalItems)*10) / 10
	}
	return d
}

type AnalyticsService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	menu   repository.MenuRepository
	now    func() time.Time
}

func NewAnalyticsService(orders repository.OrderRepository, users repository.UserRepository, menu repository.MenuRepository) *AnalyticsService {
	return &AnalyticsService{orders: orders, users: users, menu: menu, now: time.Now}
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.orders.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, "")
	if err != nil {
		return nil, err
	}
	menu, err := s.menu.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(orders, users, menu, s.now()), nil
}
