package reporting

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
)

// Seller list orders.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
)

// FilterSellers keeps accounts whose name or email contains term,
// ignoring case. A blank term keeps everything.
func FilterSellers(sellers []marketplace.Account, term string) []marketplace.Account {
	fold := cases.Fold()
	term = fold.String(strings.TrimSpace(term))

	out := make([]marketplace.Account, 0, len(sellers))
	for _, s := range sellers {
		if term == "" ||
			strings.Contains(fold.String(s.Name), term) ||
			strings.Contains(fold.String(s.Email), term) {
			out = append(out, s)
		}
	}
	return out
}

// SortSellers returns a sorted copy of sellers. Unknown orders keep the
// input order. Equal keys keep their relative order.
func SortSellers(sellers []marketplace.Account, order string) []marketplace.Account {
	out := slices.Clone(sellers)
	switch order {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b marketplace.Account) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b marketplace.Account) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortName:
		c := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b marketplace.Account) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
	return out
}

// UniqueCategories returns the non-blank product categories in
// first-seen order.
func UniqueCategories(products []marketplace.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
