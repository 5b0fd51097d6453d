package marketplace

import (
	"time"

	"github.com/dmitrymomot/marketadmin/pkg/session"
)

// Party is a user reference embedded in products and orders.
type Party struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Product is a digital product listed by a seller.
type Product struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Category     string    `json:"category,omitempty"`
	Active       bool      `json:"active"`
	FileURL      string    `json:"fileUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Seller       *Party    `json:"seller,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Order is a purchase seen from either side: a sale for the seller, a
// purchase for the buyer.
type Order struct {
	ID        string    `json:"_id"`
	Product   *Product  `json:"product,omitempty"`
	Buyer     *Party    `json:"buyer,omitempty"`
	Seller    *Party    `json:"seller,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Seller approval states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Account is a marketplace user as listed in user management.
type Account struct {
	ID              string       `json:"_id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Role            session.Role `json:"role"`
	Status          string       `json:"status,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Product list sort orders.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// ProductQuery filters the admin product list. Page is 1-based.
// Empty or "all" filters are not sent.
type ProductQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Status   string
	Sort     string
}

// ProductPage is one page of the admin product list.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// UserQuery filters the admin user list. Page is 1-based.
type UserQuery struct {
	Page   int
	Limit  int
	Search string
	Role   string
	Status string
}

// Pagination is the paging block of list replies.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Pages int `json:"pages,omitempty"`
}

// UserPage is one page of the admin user list.
type UserPage struct {
	Users []Account `json:"users"`
	Total int       `json:"total"`
}

// FlagRequest reports a product for review.
type FlagRequest struct {
	ProductID string `json:"productId"`
	Title     string `json:"title,omitempty"`
	FlaggedBy string `json:"flaggedBy,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// DateKey is the grouping key of a sales-by-date row. Day is zero for
// monthly buckets.
type DateKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
}

// SalesByDate is one bucket of the sales report.
type SalesByDate struct {
	Date    DateKey `json:"_id"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// SalesByCategory is revenue per product category. Category may be empty.
type SalesByCategory struct {
	Category string  `json:"_id"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders,omitempty"`
}

// TopProduct is a best-selling product row.
type TopProduct struct {
	ID       string  `json:"_id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Report timeframes.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// SalesReport is the admin sales report for a timeframe.
type SalesReport struct {
	Timeframe       string            `json:"timeframe,omitempty"`
	SalesByDate     []SalesByDate     `json:"salesByDate"`
	SalesByCategory []SalesByCategory `json:"salesByCategory"`
	TopProducts     []TopProduct      `json:"topProducts"`
}

// CategoryCount is the product count per category.
type CategoryCount struct {
	Category string `json:"_id"`
	Count    int    `json:"count"`
	Active   int    `json:"active"`
	Inactive int    `json:"inactive"`
}

// MonthCount is the number of products created in a month.
type MonthCount struct {
	Month DateKey `json:"_id"`
	Count int     `json:"count"`
}

// TopSeller is a seller ranked by listed products.
type TopSeller struct {
	ID           string `json:"_id"`
	SellerName   string `json:"sellerName"`
	SellerEmail  string `json:"sellerEmail"`
	ProductCount int    `json:"productCount"`
}

// ProductStatistics is the admin catalogue report.
type ProductStatistics struct {
	ProductsByCategory []CategoryCount `json:"productsByCategory"`
	ProductsByMonth    []MonthCount    `json:"productsByMonth"`
	TopSellers         []TopSeller     `json:"topSellers"`
}

// SignedUpload is a presigned storage target for a file upload.
type SignedUpload struct {
	UploadURL string `json:"signedUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key,omitempty"`
}

// CartItem is a product in the signed-in user's cart.
type CartItem struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"addedAt"`
}

// Cart is the signed-in user's cart.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// Review is a buyer's rating of a product.
type Review struct {
	ID        string    `json:"_id,omitempty"`
	ProductID string    `json:"product"`
	User      *Party    `json:"user,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the editable part of the signed-in user's record.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// DashboardData holds the role-specific lists shown on the dashboard.
// Fields the role cannot see stay nil.
type DashboardData struct {
	Products  []Product `json:"products,omitempty"`
	Sales     []Order   `json:"sales,omitempty"`
	Purchases []Order   `json:"purchases,omitempty"`
}
