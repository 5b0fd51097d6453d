package marketplace

import (
	"context"
	"net/http"
	"net/url"
)

// ListProducts returns one page of the full product catalogue.
func (s *Service) ListProducts(ctx context.Context, q ProductQuery) (ProductPage, error) {
	params := url.Values{}
	pageParams(params, q.Page, q.Limit)
	filterParam(params, "search", q.Search)
	filterParam(params, "category", q.Category)
	filterParam(params, "status", q.Status)
	filterParam(params, "sort", q.Sort)

	var page ProductPage
	if err := s.client.GetJSON(ctx, "/admin/products", params, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// ToggleProductStatus flips a product between active and inactive.
func (s *Service) ToggleProductStatus(ctx context.Context, id string) (*Product, error) {
	seg, err := segment(id)
	if err != nil {
		return nil, err
	}
	path := "/admin/products/" + seg + "/toggle-status"

	var resp struct {
		ack
		Product *Product `json:"product"`
	}
	if err := s.client.PatchJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(http.MethodPatch, path); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// DeleteProduct removes a product permanently.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	seg, err := segment(id)
	if err != nil {
		return err
	}
	path := "/admin/products/" + seg

	var resp ack
	if err := s.client.DeleteJSON(ctx, path, &resp); err != nil {
		return err
	}
	return resp.check(http.MethodDelete, path)
}

// FlagProduct reports a product for review.
func (s *Service) FlagProduct(ctx context.Context, req FlagRequest) error {
	if _, err := segment(req.ProductID); err != nil {
		return err
	}
	const path = "/admin/flag-product"

	var resp ack
	if err := s.client.PostJSON(ctx, path, req, &resp); err != nil {
		return err
	}
	return resp.check(http.MethodPost, path)
}

// PendingSellers lists seller accounts awaiting approval.
func (s *Service) PendingSellers(ctx context.Context) ([]Account, error) {
	var resp struct {
		Sellers []Account `json:"sellers"`
	}
	if err := s.client.GetJSON(ctx, "/admin/pending-sellers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sellers, nil
}

// ApproveSeller approves a pending seller.
func (s *Service) ApproveSeller(ctx context.Context, id string) error {
	seg, err := segment(id)
	if err != nil {
		return err
	}
	path := "/admin/approve-seller/" + seg

	var resp ack
	if err := s.client.PutJSON(ctx, path, nil, &resp); err != nil {
		return err
	}
	return resp.check(http.MethodPut, path)
}

// RejectSeller rejects a pending seller. The reason is sent only when set.
func (s *Service) RejectSeller(ctx context.Context, id, reason string) error {
	seg, err := segment(id)
	if err != nil {
		return err
	}
	path := "/admin/reject-seller/" + seg

	var body any
	if reason != "" {
		body = struct {
			Reason string `json:"reason"`
		}{reason}
	}

	var resp ack
	if err := s.client.PutJSON(ctx, path, body, &resp); err != nil {
		return err
	}
	return resp.check(http.MethodPut, path)
}

// ListUsers returns one page of marketplace accounts.
func (s *Service) ListUsers(ctx context.Context, q UserQuery) (UserPage, error) {
	params := url.Values{}
	pageParams(params, q.Page, q.Limit)
	filterParam(params, "search", q.Search)
	filterParam(params, "role", q.Role)
	filterParam(params, "status", q.Status)

	var resp struct {
		Users      []Account  `json:"users"`
		Pagination Pagination `json:"pagination"`
	}
	if err := s.client.GetJSON(ctx, "/admin/users", params, &resp); err != nil {
		return UserPage{}, err
	}
	return UserPage{Users: resp.Users, Total: resp.Pagination.Total}, nil
}

// SalesReport returns sales aggregates for a timeframe. An empty
// timeframe defaults to month.
func (s *Service) SalesReport(ctx context.Context, timeframe string) (SalesReport, error) {
	if timeframe == "" {
		timeframe = TimeframeMonth
	}
	const path = "/admin/reports/sales"
	var resp struct {
		ack
		Report SalesReport `json:"report"`
	}
	params := url.Values{"timeframe": {timeframe}}
	if err := s.client.GetJSON(ctx, path, params, &resp); err != nil {
		return SalesReport{}, err
	}
	if err := resp.check(http.MethodGet, path); err != nil {
		return SalesReport{}, err
	}
	resp.Report.Timeframe = timeframe
	return resp.Report, nil
}

// ProductStatistics returns catalogue aggregates.
func (s *Service) ProductStatistics(ctx context.Context) (ProductStatistics, error) {
	const path = "/admin/reports/product-statistics"
	var resp struct {
		ack
		Statistics ProductStatistics `json:"statistics"`
	}
	if err := s.client.GetJSON(ctx, path, nil, &resp); err != nil {
		return ProductStatistics{}, err
	}
	if err := resp.check(http.MethodGet, path); err != nil {
		return ProductStatistics{}, err
	}
	return resp.Statistics, nil
}
