package services

import (
	"testing"
	"time"

	"oh-crepe-api/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func order(status models.OrderStatus, total string, created time.Time, items ...models.OrderItem) models.Order {
	return models.Order{Status: status, TotalAmount: dec(total), CreatedAt: created, Items: items}
}

func line(id uint, name string, qty int, price string) models.OrderItem {
	return models.OrderItem{MenuItemID: id, MenuItemName: name, Quantity: qty, Price: dec(price)}
}

func TestBuildDashboard(t *testing.T) {
	// Thursday 16 May 2024, 15:00
	now := time.Date(2024, 5, 16, 15, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour)
	threeDaysAgo := now.AddDate(0, 0, -3)
	tenDaysAgo := now.AddDate(0, 0, -10)
	lastMonth := time.Date(2024, 4, 28, 9, 0, 0, 0, time.UTC)

	orders := []models.Order{
		order(models.StatusDelivered, "355", today, line(3, "Strawberry", 2, "175")),
		order(models.StatusDelivered, "335", threeDaysAgo, line(1, "Butter", 3, "110")),
		order(models.StatusDelivered, "115", tenDaysAgo, line(1, "Butter", 1, "110")),
		order(models.StatusDelivered, "500", lastMonth, line(9, "Coconut", 3, "165")),
		order(models.StatusPending, "170", today, line(6, "Apple", 1, "165")),
		order(models.StatusPreparing, "185", today, line(7, "Smores", 1, "180")),
		order(models.StatusCancelled, "999", today, line(3, "Strawberry", 5, "175")),
	}
	users := []models.User{
		{Role: models.RoleCustomer}, {Role: models.RoleCustomer}, {Role: models.RoleStaff}, {Role: models.RoleAdmin},
	}
	menu := []models.MenuItem{
		{Available: true, PreparationTime: 10},
		{Available: true, PreparationTime: 20},
		{Available: false, PreparationTime: 15},
		{Available: true, PreparationTime: 15},
	}

	d := BuildDashboard(orders, users, menu, now)

	if d.Today.Orders != 1 || !d.Today.Revenue.Equal(dec("355")) {
		t.Errorf("today = %+v", d.Today)
	}
	if d.Week.Orders != 2 || !d.Week.Revenue.Equal(dec("690")) {
		t.Errorf("week = %+v", d.Week)
	}
	if d.Month.Orders != 3 || !d.Month.Revenue.Equal(dec("805")) {
		t.Errorf("month = %+v", d.Month)
	}
	// (355+335+115+500+170+185) / 6
	if !d.AverageOrderValue.Equal(dec("276.67")) {
		t.Errorf("average order value = %s", d.AverageOrderValue)
	}
	if d.PendingOrders != 1 || d.ActiveOrders != 2 {
		t.Errorf("pending = %d, active = %d", d.PendingOrders, d.ActiveOrders)
	}
	// 4 of 7 delivered
	if d.CompletionRate != 57.1 {
		t.Errorf("completion rate = %v", d.CompletionRate)
	}
	if d.OrdersByStatus[models.StatusDelivered] != 4 || d.OrdersByStatus[models.StatusCancelled] != 1 {
		t.Errorf("orders by status = %v", d.OrdersByStatus)
	}

	if len(d.TopSellingItems) != 2 {
		t.Fatalf("top items = %+v", d.TopSellingItems)
	}
	if top := d.TopSellingItems[0]; top.Name != "Butter" || top.Quantity != 3 || !top.Revenue.Equal(dec("330")) {
		t.Errorf("top item = %+v", top)
	}

	if len(d.RevenueTrend) != 7 {
		t.Fatalf("trend has %d days", len(d.RevenueTrend))
	}
	last := d.RevenueTrend[6]
	if last.Date != "2024-05-16" || last.DayName != "Thu" || !last.Revenue.Equal(dec("355")) {
		t.Errorf("today's trend point = %+v", last)
	}
	if p := d.RevenueTrend[3]; p.Date != "2024-05-13" || !p.Revenue.Equal(dec("335")) {
		t.Errorf("three days ago = %+v", p)
	}
	if first := d.RevenueTrend[0]; first.Date != "2024-05-10" || !first.Revenue.IsZero() {
		t.Errorf("first trend point = %+v", first)
	}

	if d.Users != (UserSummary{Total: 4, Customers: 2, Staff: 1, Admins: 1}) {
		t.Errorf("users = %+v", d.Users)
	}
	if d.Menu.TotalItems != 4 || d.Menu.AvailableItems != 3 || d.Menu.AvailabilityRate != 75 || d.Menu.AveragePrepMinutes != 15 {
		t.Errorf("menu = %+v", d.Menu)
	}
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(nil, nil, nil, time.Now())
	if d.CompletionRate != 0 || !d.AverageOrderValue.IsZero() || d.Menu.AvailabilityRate != 0 {
		t.Errorf("empty dashboard = %+v", d)
	}
	if d.TopSellingItems == nil || len(d.RevenueTrend) != 7 {
		t.Error("empty dashboard should still carry an empty top list and a full trend")
	}
}

func TestBuildDashboard_TrendAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	// clocks went forward on Sunday 10 March 2024
	now := time.Date(2024, 3, 12, 15, 0, 0, 0, loc)
	orders := []models.Order{
		order(models.StatusDelivered, "120", time.Date(2024, 3, 10, 12, 0, 0, 0, loc)),
		order(models.StatusDelivered, "200", time.Date(2024, 3, 11, 0, 30, 0, 0, loc)),
	}

	d := BuildDashboard(orders, nil, nil, now)

	want := map[string]string{"2024-03-10": "120", "2024-03-11": "200", "2024-03-12": "0"}
	for _, p := range d.RevenueTrend {
		amount, ok := want[p.Date]
		if !ok {
			continue
		}
		if !p.Revenue.Equal(dec(amount)) {
			t.Errorf("%s revenue = %s, want %s", p.Date, p.Revenue, amount)
		}
	}
}
