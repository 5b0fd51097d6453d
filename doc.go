// Package marketadmin wires the marketplace admin console together: durable
// session storage, the session manager, the authenticated API client and
// the typed marketplace service.
//
// A host builds one Console per process and starts it before making any
// role-gated call:
//
//	var cfg marketadmin.Config
//	config.MustLoad(&cfg)
//
//	console, err := marketadmin.New(ctx, cfg,
//		marketadmin.WithNavigator(func(ctx context.Context, path string) {
//			// send the operator back to the sign-in screen
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	defer console.Close()
//
//	if _, err := console.Start(ctx); err != nil {
//		return err
//	}
//	if err := console.RequireAdmin(ctx); err != nil {
//		return err
//	}
//	page, err := console.Market.ListProducts(ctx, marketplace.ProductQuery{Page: 1, Limit: 10})
//
// When the backend answers 401 to any call, the console clears the stored
// session and invokes the navigator with the configured login path.
// There is no package-level state; tests build as many consoles as they
// need.
package marketadmin
