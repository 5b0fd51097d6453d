package reporting

import (
	"fmt"

	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
)

// Uncategorized labels aggregates with no category.
const Uncategorized = "Uncategorized"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short English month name for 1..12, or "" out
// of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// DateLabel formats a report bucket for a timeframe: "7/3" for week,
// "7 Mar" for month, and "Mar" otherwise.
func DateLabel(k marketplace.DateKey, timeframe string) string {
	switch timeframe {
	case marketplace.TimeframeWeek:
		return fmt.Sprintf("%d/%d", k.Day, k.Month)
	case marketplace.TimeframeMonth:
		return fmt.Sprintf("%d %s", k.Day, MonthName(k.Month))
	default:
		return MonthName(k.Month)
	}
}

// SalesPoint is a point of the sales-over-time series.
type SalesPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Slice is a labelled value of a pie series.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SalesSeries is the sales report shaped for charts.
type SalesSeries struct {
	ByDate       []SalesPoint             `json:"byDate"`
	ByCategory   []Slice                  `json:"byCategory"`
	TopProducts  []marketplace.TopProduct `json:"topProducts"`
	TotalOrders  int                      `json:"totalOrders"`
	TotalRevenue float64                  `json:"totalRevenue"`
}

// SalesChart shapes a sales report into chart series.
func SalesChart(r marketplace.SalesReport) SalesSeries {
	s := SalesSeries{
		ByDate:      make([]SalesPoint, 0, len(r.SalesByDate)),
		ByCategory:  make([]Slice, 0, len(r.SalesByCategory)),
		TopProducts: r.TopProducts,
	}
	for _, d := range r.SalesByDate {
		s.ByDate = append(s.ByDate, SalesPoint{
			Date:    DateLabel(d.Date, r.Timeframe),
			Orders:  d.Orders,
			Revenue: d.Revenue,
		})
		s.TotalOrders += d.Orders
		s.TotalRevenue += d.Revenue
	}
	for _, c := range r.SalesByCategory {
		s.ByCategory = append(s.ByCategory, Slice{Name: categoryName(c.Category), Value: c.Revenue})
	}
	return s
}

// CategoryBar is a bar of the products-per-category chart.
type CategoryBar struct {
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Active   int    `json:"active"`
	Inactive int    `json:"inactive"`
}

// MonthPoint is a point of the products-over-time series.
type MonthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProductSeries is the product statistics shaped for charts.
type ProductSeries struct {
	ByCategory []CategoryBar           `json:"byCategory"`
	ByMonth    []MonthPoint            `json:"byMonth"`
	TopSellers []marketplace.TopSeller `json:"topSellers"`
}

// ProductChart shapes product statistics into chart series. Months are
// labelled "Mar 2024".
func ProductChart(st marketplace.ProductStatistics) ProductSeries {
	s := ProductSeries{
		ByCategory: make([]CategoryBar, 0, len(st.ProductsByCategory)),
		ByMonth:    make([]MonthPoint, 0, len(st.ProductsByMonth)),
		TopSellers: st.TopSellers,
	}
	for _, c := range st.ProductsByCategory {
		s.ByCategory = append(s.ByCategory, CategoryBar{
			Name:     categoryName(c.Category),
			Total:    c.Count,
			Active:   c.Active,
			Inactive: c.Inactive,
		})
	}
	for _, m := range st.ProductsByMonth {
		s.ByMonth = append(s.ByMonth, MonthPoint{
			Date:  fmt.Sprintf("%s %d", MonthName(m.Month.Month), m.Month.Year),
			Count: m.Count,
		})
	}
	return s
}

func categoryName(c string) string {
	if c == "" {
		return Uncategorized
	}
	return c
}
