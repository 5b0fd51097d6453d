package marketplace

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	Title        string  `json:"title,omitempty"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Category     string  `json:"category,omitempty"`
	FileURL      string  `json:"fileUrl,omitempty"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

type productsReply struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type productReply struct {
	ack
	Product *Product `json:"product"`
}

type ordersReply struct {
	Orders []Order `json:"orders"`
}

// Products lists public products. params are passed through as the
// query string.
func (s *Service) Products(ctx context.Context, params url.Values) (ProductPage, error) {
	var resp productsReply
	if err := s.client.GetJSON(ctx, "/products", params, &resp); err != nil {
		return ProductPage{}, err
	}
	return ProductPage{Products: resp.Products, Total: resp.Total}, nil
}

// Product fetches a single product.
func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	seg, err := segment(id)
	if err != nil {
		return nil, err
	}
	var resp productReply
	if err := s.client.GetJSON(ctx, "/products/"+seg, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// MyProducts lists the signed-in seller's products.
func (s *Service) MyProducts(ctx context.Context) ([]Product, error) {
	var resp productsReply
	if err := s.client.GetJSON(ctx, "/products/seller/my-products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateProduct lists a new product for the signed-in seller.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	const path = "/products"
	var resp productReply
	if err := s.client.PostJSON(ctx, path, in, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(http.MethodPost, path); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// UpdateProduct changes the fields set in in.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	seg, err := segment(id)
	if err != nil {
		return nil, err
	}
	path := "/products/" + seg
	var resp productReply
	if err := s.client.PutJSON(ctx, path, in, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(http.MethodPut, path); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// SetProductActive activates or deactivates one of the seller's products.
func (s *Service) SetProductActive(ctx context.Context, id string, active bool) (*Product, error) {
	return s.UpdateProduct(ctx, id, ProductInput{Active: &active})
}

// MyPurchases lists the signed-in buyer's orders.
func (s *Service) MyPurchases(ctx context.Context) ([]Order, error) {
	var resp ordersReply
	if err := s.client.GetJSON(ctx, "/orders/my-purchases", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// MySales lists orders for the signed-in seller's products.
func (s *Service) MySales(ctx context.Context) ([]Order, error) {
	var resp ordersReply
	if err := s.client.GetJSON(ctx, "/orders/my-sales", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// DownloadURL returns a short-lived link to the purchased file.
func (s *Service) DownloadURL(ctx context.Context, orderID string) (string, error) {
	seg, err := segment(orderID)
	if err != nil {
		return "", err
	}
	var resp struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := s.client.GetJSON(ctx, "/orders/download/"+seg, nil, &resp); err != nil {
		return "", err
	}
	return resp.DownloadURL, nil
}

// SignedUploadURL requests a presigned upload target. fileType defaults
// to "file".
func (s *Service) SignedUploadURL(ctx context.Context, fileName, contentType, fileType string) (SignedUpload, error) {
	if fileType == "" {
		fileType = "file"
	}
	body := struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		FileType    string `json:"fileType"`
	}{fileName, contentType, fileType}

	var resp SignedUpload
	if err := s.client.PostJSON(ctx, "/uploads/get-signed-url", body, &resp); err != nil {
		return SignedUpload{}, err
	}
	return resp, nil
}

// UploadFile requests a signed URL and uploads content to it. It returns
// the public URL of the stored file.
func (s *Service) UploadFile(ctx context.Context, fileName, contentType, fileType string, content io.Reader) (string, error) {
	target, err := s.SignedUploadURL(ctx, fileName, contentType, fileType)
	if err != nil {
		return "", err
	}
	if err := s.client.Upload(ctx, target.UploadURL, contentType, content); err != nil {
		return "", err
	}
	return target.FileURL, nil
}

// UpdateProfile changes the signed-in user's profile.
func (s *Service) UpdateProfile(ctx context.Context, p Profile) (*Account, error) {
	var resp struct {
		User *Account `json:"user"`
	}
	if err := s.client.PutJSON(ctx, "/users/profile", p, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Cart returns the signed-in user's cart.
func (s *Service) Cart(ctx context.Context) (Cart, error) {
	var resp struct {
		Cart Cart `json:"cart"`
	}
	if err := s.client.GetJSON(ctx, "/cart", nil, &resp); err != nil {
		return Cart{}, err
	}
	return resp.Cart, nil
}

// AddToCart adds a product to the cart.
func (s *Service) AddToCart(ctx context.Context, productID string) error {
	if _, err := segment(productID); err != nil {
		return err
	}
	body := struct {
		ProductID string `json:"productId"`
	}{strings.TrimSpace(productID)}
	return s.client.PostJSON(ctx, "/cart", body, nil)
}

// RemoveFromCart removes a product from the cart.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) error {
	seg, err := segment(productID)
	if err != nil {
		return err
	}
	return s.client.DeleteJSON(ctx, "/cart/"+seg, nil)
}

// Reviews lists the reviews of a product.
func (s *Service) Reviews(ctx context.Context, productID string) ([]Review, error) {
	seg, err := segment(productID)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Reviews []Review `json:"reviews"`
	}
	if err := s.client.GetJSON(ctx, "/reviews/product/"+seg, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// CreateReview submits a review for a purchased product.
func (s *Service) CreateReview(ctx context.Context, r Review) (*Review, error) {
	if _, err := segment(r.ProductID); err != nil {
		return nil, err
	}
	if r.Rating < 1 || r.Rating > 5 {
		return nil, ErrInvalidRating
	}
	body := struct {
		Product string `json:"product"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment,omitempty"`
	}{r.ProductID, r.Rating, r.Comment}

	var resp struct {
		Review *Review `json:"review"`
	}
	if err := s.client.PostJSON(ctx, "/reviews", body, &resp); err != nil {
		return nil, err
	}
	return resp.Review, nil
}
