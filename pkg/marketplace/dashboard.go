package marketplace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/marketadmin/pkg/session"
)

// Dashboard fetches the lists a role sees on its dashboard in parallel.
// Sellers and admins get their products and sales, buyers and admins
// their purchases. The first failure cancels the rest and is returned.
func (s *Service) Dashboard(ctx context.Context, role session.Role) (DashboardData, error) {
	var data DashboardData
	g, ctx := errgroup.WithContext(ctx)

	if role == session.RoleSeller || role == session.RoleAdmin {
		g.Go(func() (err error) {
			data.Products, err = s.MyProducts(ctx)
			return err
		})
		g.Go(func() (err error) {
			data.Sales, err = s.MySales(ctx)
			return err
		})
	}
	if role == session.RoleBuyer || role == session.RoleAdmin {
		g.Go(func() (err error) {
			data.Purchases, err = s.MyPurchases(ctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return DashboardData{}, err
	}
	return data, nil
}
