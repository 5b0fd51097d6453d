package marketplace_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
	"github.com/dmitrymomot/marketadmin/pkg/marketplace"
	"github.com/dmitrymomot/marketadmin/pkg/session"
)

func TestService_Products(t *testing.T) {
	var putBody map[string]any
	svc, _ := newService(t, func(r chi.Router) {
		r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "design", r.URL.Query().Get("category"))
			writeJSON(w, http.StatusOK, map[string]any{"products": []map[string]any{{"_id": "p1"}}, "total": 1})
		})
		r.Get("/products/seller/my-products", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"products": []map[string]any{{"_id": "p2"}, {"_id": "p3"}}})
		})
		r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"product": map[string]any{"_id": chi.URLParam(r, "id"), "title": "Icons"}})
		})
		r.Post("/products", func(w http.ResponseWriter, r *http.Request) {
			in := readJSON(t, r)
			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "product": map[string]any{"_id": "new", "title": in["title"]}})
		})
		r.Put("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			putBody = readJSON(t, r)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": map[string]any{"_id": chi.URLParam(r, "id"), "active": putBody["active"]}})
		})
	})
	ctx := t.Context()

	page, err := svc.Products(ctx, map[string][]string{"category": {"design"}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	mine, err := svc.MyProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	p, err := svc.Product(ctx, "p7")
	require.NoError(t, err)
	assert.Equal(t, "Icons", p.Title)

	created, err := svc.CreateProduct(ctx, marketplace.ProductInput{Title: "Sounds", Price: 5})
	require.NoError(t, err)
	assert.Equal(t, "Sounds", created.Title)

	updated, err := svc.SetProductActive(ctx, "p2", false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, map[string]any{"active": false}, putBody)
}

func TestService_Orders(t *testing.T) {
	svc, _ := newService(t, func(r chi.Router) {
		r.Get("/orders/my-purchases", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"orders": []map[string]any{{"_id": "o1", "amount": 10}}})
		})
		r.Get("/orders/my-sales", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"orders": []map[string]any{{"_id": "o2"}, {"_id": "o3"}}})
		})
		r.Get("/orders/download/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"downloadUrl": "https://cdn.example.com/" + chi.URLParam(r, "id")})
		})
	})
	ctx := t.Context()

	purchases, err := svc.MyPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, 10.0, purchases[0].Amount)

	sales, err := svc.MySales(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	link, err := svc.DownloadURL(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/o1", link)
}

func TestService_UploadFile(t *testing.T) {
	var uploaded, uploadAuth string
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		uploaded = string(data)
		uploadAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer store.Close()

	var signBody map[string]any
	svc, _ := newService(t, func(r chi.Router) {
		r.Post("/uploads/get-signed-url", func(w http.ResponseWriter, r *http.Request) {
			signBody = readJSON(t, r)
			writeJSON(w, http.StatusOK, map[string]any{
				"signedUrl": store.URL + "/bucket/file.zip",
				"fileUrl":   "https://cdn.example.com/file.zip",
			})
		})
	})

	fileURL, err := svc.UploadFile(t.Context(), "file.zip", "application/zip", "", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/file.zip", fileURL)
	assert.Equal(t, "payload", uploaded)
	assert.Empty(t, uploadAuth)
	assert.Equal(t, map[string]any{"fileName": "file.zip", "contentType": "application/zip", "fileType": "file"}, signBody)
}

func TestService_CartAndReviews(t *testing.T) {
	var added, removed string
	svc, _ := newService(t, func(r chi.Router) {
		r.Get("/cart", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"cart": map[string]any{
				"items": []map[string]any{{"product": map[string]any{"_id": "p1", "price": 3}}},
				"total": 3,
			}})
		})
		r.Post("/cart", func(w http.ResponseWriter, r *http.Request) {
			added, _ = readJSON(t, r)["productId"].(string)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		})
		r.Delete("/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
			removed = chi.URLParam(r, "id")
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/reviews/product/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"reviews": []map[string]any{{"_id": "r1", "product": chi.URLParam(r, "id"), "rating": 4}}})
		})
		r.Post("/reviews", func(w http.ResponseWriter, r *http.Request) {
			in := readJSON(t, r)
			writeJSON(w, http.StatusCreated, map[string]any{"review": map[string]any{"_id": "r2", "product": in["product"], "rating": in["rating"]}})
		})
		r.Put("/users/profile", func(w http.ResponseWriter, r *http.Request) {
			in := readJSON(t, r)
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"_id": "u1", "name": in["name"]}})
		})
	})
	ctx := t.Context()

	cart, err := svc.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cart.Total)
	require.Len(t, cart.Items, 1)

	require.NoError(t, svc.AddToCart(ctx, "p1"))
	assert.Equal(t, "p1", added)
	require.NoError(t, svc.RemoveFromCart(ctx, "p1"))
	assert.Equal(t, "p1", removed)

	reviews, err := svc.Reviews(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)

	_, err = svc.CreateReview(ctx, marketplace.Review{ProductID: "p1", Rating: 6})
	assert.ErrorIs(t, err, marketplace.ErrInvalidRating)

	review, err := svc.CreateReview(ctx, marketplace.Review{ProductID: "p1", Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, "r2", review.ID)
	assert.Equal(t, 5, review.Rating)

	acc, err := svc.UpdateProfile(ctx, marketplace.Profile{Name: "Ann B"})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", acc.Name)
}

func TestService_Dashboard(t *testing.T) {
	var products, sales, purchases atomic.Int32
	setup := func(r chi.Router) {
		r.Get("/products/seller/my-products", func(w http.ResponseWriter, r *http.Request) {
			products.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"products": []map[string]any{{"_id": "p1"}}})
		})
		r.Get("/orders/my-sales", func(w http.ResponseWriter, r *http.Request) {
			sales.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"orders": []map[string]any{{"_id": "o1"}}})
		})
		r.Get("/orders/my-purchases", func(w http.ResponseWriter, r *http.Request) {
			purchases.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"orders": []map[string]any{{"_id": "o2"}}})
		})
	}

	t.Run("admin gets everything", func(t *testing.T) {
		products.Store(0)
		sales.Store(0)
		purchases.Store(0)
		svc, _ := newService(t, setup)

		data, err := svc.Dashboard(t.Context(), session.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, data.Products, 1)
		assert.Len(t, data.Sales, 1)
		assert.Len(t, data.Purchases, 1)
	})

	t.Run("buyer gets purchases only", func(t *testing.T) {
		products.Store(0)
		sales.Store(0)
		purchases.Store(0)
		svc, _ := newService(t, setup)

		data, err := svc.Dashboard(t.Context(), session.RoleBuyer)
		require.NoError(t, err)
		assert.Nil(t, data.Products)
		assert.Nil(t, data.Sales)
		assert.Len(t, data.Purchases, 1)
		assert.Zero(t, products.Load())
		assert.Zero(t, sales.Load())
	})

	t.Run("first failure fails the whole fetch", func(t *testing.T) {
		svc, _ := newService(t, func(r chi.Router) {
			r.Get("/products/seller/my-products", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "db down"})
			})
			r.Get("/orders/my-sales", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"orders": []any{}})
			})
		})

		_, err := svc.Dashboard(t.Context(), session.RoleSeller)
		require.Error(t, err)
		assert.Equal(t, "db down", apiclient.MessageOf(err))
	})
}
