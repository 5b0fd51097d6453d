// Package marketplace exposes the marketplace backend as typed Go calls:
// admin moderation of products, seller approvals, user management,
// reports, and the catalogue endpoints used by buyers and sellers.
//
// Every call goes through an apiclient.Client, so the bearer token, the
// request timeout and error normalization apply uniformly. Errors are
// *apiclient.Error values; use apiclient.MessageOf to display them.
//
//	svc := marketplace.New(client)
//	page, err := svc.ListProducts(ctx, marketplace.ProductQuery{Page: 1, Limit: 10, Status: "active"})
//
// Calls taking an id return ErrMissingID without sending anything when
// the id is blank.
package marketplace
