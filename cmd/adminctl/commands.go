package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
	"github.com/dmitrymomot/marketadmin/pkg/reporting"
	"github.com/dmitrymomot/marketadmin/pkg/session"
)

const dateLayout = "2006-01-02"

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password; prompted when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errUsage
	}
	if *password == "" {
		p, err := a.readPassword()
		if err != nil {
			return err
		}
		*password = p
	}

	u, err := a.console.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.out.print(userView(u))
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.console.Session.Logout(ctx); err != nil {
		return err
	}
	return a.out.message("signed out")
}

func cmdWhoami(ctx context.Context, a *app, _ []string) error {
	if err := a.console.Session.CheckExpiry(ctx); err != nil {
		return err
	}
	u := a.console.Session.CurrentUser()
	if u == nil {
		return session.ErrNoSession
	}
	return a.out.print(userView(u))
}

func userView(u *session.User) view {
	return view{
		Data:    u,
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE"},
		Rows:    [][]string{{u.ID, u.Name, u.Email, u.Role.String()}},
	}
}

func cmdProducts(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("products")
	var q marketplace.ProductQuery
	fs.IntVar(&q.Page, "page", 1, "page number, 1-based")
	fs.IntVar(&q.Limit, "limit", 10, "page size")
	fs.StringVar(&q.Search, "search", "", "title search")
	fs.StringVar(&q.Category, "category", "all", "category filter")
	fs.StringVar(&q.Status, "status", "all", "active, inactive or all")
	fs.StringVar(&q.Sort, "sort", marketplace.SortNewest, "newest, oldest, price-low or price-high")
	categories := fs.Bool("categories", false, "list the categories on this page only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.console.Market.ListProducts(ctx, q)
	if err != nil {
		return err
	}

	if *categories {
		cats := reporting.UniqueCategories(page.Products)
		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			rows = append(rows, []string{c})
		}
		return a.out.print(view{Data: cats, Headers: []string{"CATEGORY"}, Rows: rows})
	}

	rows := make([][]string, 0, len(page.Products))
	for _, p := range page.Products {
		seller := ""
		if p.Seller != nil {
			seller = p.Seller.Name
		}
		rows = append(rows, []string{
			p.ID, p.Title, p.Category, money(p.Price), activeLabel(p.Active), seller, p.CreatedAt.Format(dateLayout),
		})
	}
	return a.out.print(view{
		Data:    page,
		Headers: []string{"ID", "TITLE", "CATEGORY", "PRICE", "STATUS", "SELLER", "CREATED"},
		Rows:    rows,
		Footer:  fmt.Sprintf("page %d, %d of %d products", q.Page, len(page.Products), page.Total),
	})
}

func cmdToggleProduct(ctx context.Context, a *app, args []string) error {
	id, err := oneID(a.newFlags("toggle-product"), args)
	if err != nil {
		return err
	}
	p, err := a.console.Market.ToggleProductStatus(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return a.out.message("product " + id + " updated")
	}
	return a.out.message(fmt.Sprintf("product %s is now %s", id, activeLabel(p.Active)))
}

func cmdDeleteProduct(ctx context.Context, a *app, args []string) error {
	id, err := oneID(a.newFlags("delete-product"), args)
	if err != nil {
		return err
	}
	if err := a.console.Market.DeleteProduct(ctx, id); err != nil {
		return err
	}
	return a.out.message("product " + id + " deleted")
}

func cmdFlagProduct(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("flag-product")
	title := fs.String("title", "", "product title")
	reason := fs.String("reason", "", "why the product is flagged")
	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	req := marketplace.FlagRequest{ProductID: id, Title: *title, Reason: *reason}
	if u := a.console.Session.CurrentUser(); u != nil {
		req.FlaggedBy = u.ID
	}
	if err := a.console.Market.FlagProduct(ctx, req); err != nil {
		return err
	}
	return a.out.message("product " + id + " flagged for review")
}

func cmdSellers(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("sellers")
	search := fs.String("search", "", "name or email filter")
	order := fs.String("sort", reporting.SortNewest, "newest, oldest or name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sellers, err := a.console.Market.PendingSellers(ctx)
	if err != nil {
		return err
	}
	sellers = reporting.SortSellers(reporting.FilterSellers(sellers, *search), *order)

	rows := make([][]string, 0, len(sellers))
	for _, s := range sellers {
		rows = append(rows, []string{s.ID, s.Name, s.Email, s.CreatedAt.Format(dateLayout)})
	}
	return a.out.print(view{
		Data:    sellers,
		Headers: []string{"ID", "NAME", "EMAIL", "REGISTERED"},
		Rows:    rows,
		Footer:  plural(len(sellers), "seller") + " awaiting approval",
	})
}

func cmdApproveSeller(ctx context.Context, a *app, args []string) error {
	id, err := oneID(a.newFlags("approve-seller"), args)
	if err != nil {
		return err
	}
	if err := a.console.Market.ApproveSeller(ctx, id); err != nil {
		return err
	}
	return a.out.message("seller " + id + " approved")
}

func cmdRejectSeller(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("reject-seller")
	reason := fs.String("reason", "", "reason shown to the seller")
	id, err := oneID(fs, args)
	if err != nil {
		return err
	}
	if err := a.console.Market.RejectSeller(ctx, id, strings.TrimSpace(*reason)); err != nil {
		return err
	}
	return a.out.message("seller " + id + " rejected")
}

func cmdUsers(ctx context.Context, a *app, args []string) error {
	fs := a.newFlags("users")
	var q marketplace.UserQuery
	fs.IntVar(&q.Page, "page", 1, "page number, 1-based")
	fs.IntVar(&q.Limit, "limit", 10, "page size")
	fs.StringVar(&q.Search, "search", "", "name or email search")
	fs.StringVar(&q.Role, "role", "all", "admin, seller, buyer or all")
	fs.StringVar(&q.Status, "status", "all", "pending, approved, rejected or all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := a.console.Market.ListUsers(ctx, q)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(page.Users))
	for _, u := range page.Users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role.String(), u.Status, u.CreatedAt.Format(dateLayout)})
	}
	return a.out.print(view{
		Data:    page,
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "JOINED"},
		Rows:    rows,
		Footer:  fmt.Sprintf("page %d, %d of %d users", q.Page, len(page.Users), page.Total),
	})
}

func cmdReport(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "sales":
		fs := a.newFlags("report sales")
		timeframe := fs.String("timeframe", marketplace.TimeframeMonth, "week, month or year")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		report, err := a.console.Market.SalesReport(ctx, *timeframe)
		if err != nil {
			return err
		}
		series := reporting.SalesChart(report)

		rows := make([][]string, 0, len(series.ByDate))
		for _, p := range series.ByDate {
			rows = append(rows, []string{p.Date, strconv.Itoa(p.Orders), money(p.Revenue)})
		}
		return a.out.print(view{
			Data:    series,
			Headers: []string{"DATE", "ORDERS", "REVENUE"},
			Rows:    rows,
			Footer:  fmt.Sprintf("%s, %s revenue", plural(series.TotalOrders, "order"), money(series.TotalRevenue)),
		})
	case "products":
		stats, err := a.console.Market.ProductStatistics(ctx)
		if err != nil {
			return err
		}
		series := reporting.ProductChart(stats)

		rows := make([][]string, 0, len(series.ByCategory))
		for _, c := range series.ByCategory {
			rows = append(rows, []string{c.Name, strconv.Itoa(c.Total), strconv.Itoa(c.Active), strconv.Itoa(c.Inactive)})
		}
		return a.out.print(view{
			Data:    series,
			Headers: []string{"CATEGORY", "TOTAL", "ACTIVE", "INACTIVE"},
			Rows:    rows,
		})
	default:
		return errUsage
	}
}

func cmdDashboard(ctx context.Context, a *app, _ []string) error {
	u := a.console.Session.CurrentUser()
	data, err := a.console.Market.Dashboard(ctx, u.Role)
	if err != nil {
		return err
	}

	sales := reporting.GroupSalesByProduct(data.Sales)
	stats := reporting.PurchaseStats(data.Purchases)

	rows := make([][]string, 0, len(sales))
	for id, g := range sales {
		title := id
		if g.Product != nil && g.Product.Title != "" {
			title = g.Product.Title
		}
		rows = append(rows, []string{title, strconv.Itoa(g.TotalSales), money(g.TotalRevenue)})
	}
	slices.SortFunc(rows, func(x, y []string) int { return strings.Compare(x[0], y[0]) })
	return a.out.print(view{
		Data: map[string]any{
			"products":  len(data.Products),
			"sales":     sales,
			"purchases": stats,
		},
		Headers: []string{"PRODUCT", "SALES", "REVENUE"},
		Rows:    rows,
		Footer:  fmt.Sprintf("%s listed, %s bought for $%s", plural(len(data.Products), "product"), plural(stats.TotalItems, "item"), stats.TotalSpent),
	})
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
