package reporting

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
)

// Sentinel group keys.
const (
	UnknownProduct = "unknown"
	OtherCategory  = "other"
)

// Transaction is a single sale inside a product group.
type Transaction struct {
	ID     string             `json:"_id"`
	Buyer  *marketplace.Party `json:"buyer,omitempty"`
	Date   time.Time          `json:"date"`
	Amount float64            `json:"amount"`
	Status string             `json:"status,omitempty"`
}

// ProductSales aggregates the sales of one product.
type ProductSales struct {
	Product      *marketplace.Product `json:"product,omitempty"`
	Transactions []Transaction        `json:"transactions"`
	TotalRevenue float64              `json:"totalRevenue"`
	TotalSales   int                  `json:"totalSales"`
}

// GroupSalesByProduct groups sales by product id. Sales without a product
// id land under UnknownProduct.
func GroupSalesByProduct(sales []marketplace.Order) map[string]*ProductSales {
	groups := make(map[string]*ProductSales)
	for _, sale := range sales {
		key := UnknownProduct
		if sale.Product != nil && sale.Product.ID != "" {
			key = sale.Product.ID
		}

		g, ok := groups[key]
		if !ok {
			g = &ProductSales{Product: sale.Product}
			groups[key] = g
		}
		g.Transactions = append(g.Transactions, Transaction{
			ID:     sale.ID,
			Buyer:  sale.Buyer,
			Date:   sale.CreatedAt,
			Amount: sale.Amount,
			Status: sale.Status,
		})
		g.TotalRevenue += sale.Amount
		g.TotalSales++
	}
	return groups
}

// GroupPurchasesByCategory groups purchases by product category, using
// OtherCategory when the category is missing.
func GroupPurchasesByCategory(purchases []marketplace.Order) map[string][]marketplace.Order {
	groups := make(map[string][]marketplace.Order)
	for _, p := range purchases {
		key := category(p)
		if key == "" {
			key = OtherCategory
		}
		groups[key] = append(groups[key], p)
	}
	return groups
}

// Stats summarizes a list of purchases.
type Stats struct {
	TotalItems    int    `json:"totalItems"`
	TotalSpent    string `json:"totalSpent"`
	DocumentCount int    `json:"documentCount"`
	SoftwareCount int    `json:"softwareCount"`
	DesignCount   int    `json:"designCount"`
	OtherCount    int    `json:"otherCount"`
}

// PurchaseStats counts purchases per known category and sums the amount
// spent, formatted with two decimals.
func PurchaseStats(purchases []marketplace.Order) Stats {
	var (
		st    = Stats{TotalItems: len(purchases)}
		spent float64
	)
	for _, p := range purchases {
		spent += p.Amount
		switch category(p) {
		case "document":
			st.DocumentCount++
		case "software":
			st.SoftwareCount++
		case "design":
			st.DesignCount++
		default:
			st.OtherCount++
		}
	}
	st.TotalSpent = fixed2(spent)
	return st
}

// fixed2 formats v with two decimals, rounding exact halves away from zero.
// Values that only look like halves in decimal keep their nearest rounding.
func fixed2(v float64) string {
	abs := math.Abs(v)
	floor := math.Floor(abs * 100)
	if math.FMA(abs, 100, -(floor + 0.5)) == 0 {
		v = math.Copysign((floor+1)/100, v)
	}
	return fmt.Sprintf("%.2f", v)
}

func category(o marketplace.Order) string {
	if o.Product == nil {
		return ""
	}
	return o.Product.Category
}
