package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
	"github.com/dmitrymomot/marketadmin/pkg/logger"
	"github.com/dmitrymomot/marketadmin/pkg/requestid"
)

func newServer(t *testing.T, setup func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	opts = append([]apiclient.Option{apiclient.WithLogger(logger.Discard())}, opts...)
	c, err := apiclient.New(baseURL, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := apiclient.New("/api")
		assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)
	})

	t.Run("rejects empty base URL", func(t *testing.T) {
		_, err := apiclient.New("")
		assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := apiclient.New("https://api.example.com")
		require.NoError(t, err)
		assert.Equal(t, apiclient.DefaultTimeout, c.Timeout())
		assert.Equal(t, "https://api.example.com", c.BaseURL())
	})
}

func TestClient_Authorization(t *testing.T) {
	var (
		mu      sync.Mutex
		headers [][]string
	)
	srv := newServer(t, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			headers = append(headers, r.Header.Values("Authorization"))
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
	})

	t.Run("no session sends no header", func(t *testing.T) {
		c := newClient(t, srv.URL, apiclient.WithTokenSource(apiclient.StaticToken("")))
		_, err := c.Get(context.Background(), "/ping", nil)
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, headers[len(headers)-1])
	})

	t.Run("nil token source sends no header", func(t *testing.T) {
		c := newClient(t, srv.URL)
		_, err := c.Get(context.Background(), "/ping", nil)
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, headers[len(headers)-1])
	})

	t.Run("active session sends exactly one header", func(t *testing.T) {
		c := newClient(t, srv.URL, apiclient.WithTokenSource(apiclient.StaticToken("tok-1")))
		_, err := c.Do(context.Background(), apiclient.Request{
			Path:   "/ping",
			Header: http.Header{"Authorization": {"Bearer stale"}},
		})
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"Bearer tok-1"}, headers[len(headers)-1])
	})

	t.Run("token is read at send time", func(t *testing.T) {
		var current atomic.Value
		current.Store("a")
		c := newClient(t, srv.URL, apiclient.WithTokenSource(apiclient.TokenSourceFunc(
			func(context.Context) (string, error) { return current.Load().(string), nil },
		)))

		_, err := c.Get(context.Background(), "/ping", nil)
		require.NoError(t, err)
		current.Store("b")
		_, err = c.Get(context.Background(), "/ping", nil)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		n := len(headers)
		assert.Equal(t, []string{"Bearer a"}, headers[n-2])
		assert.Equal(t, []string{"Bearer b"}, headers[n-1])
	})

	t.Run("token source error degrades to anonymous", func(t *testing.T) {
		c := newClient(t, srv.URL, apiclient.WithTokenSource(apiclient.TokenSourceFunc(
			func(context.Context) (string, error) { return "", errors.New("disk gone") },
		)))
		_, err := c.Get(context.Background(), "/ping", nil)
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, headers[len(headers)-1])
	})
}

func TestClient_Success(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Post("/products", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NotEmpty(t, r.Header.Get(requestid.Header))
				body, _ := io.ReadAll(r.Body)
				w.Header().Set("X-Echo", "1")
				writeJSON(w, http.StatusCreated, map[string]any{
					"received": json.RawMessage(body),
					"page":     r.URL.Query().Get("page"),
				})
			})
		})
	})

	c := newClient(t, srv.URL+"/api/")
	resp, err := c.Do(context.Background(), apiclient.Request{
		Method: http.MethodPost,
		Path:   "/products?page=2",
		Body:   map[string]string{"title": "Kit"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Echo"))

	var out struct {
		Received map[string]string `json:"received"`
		Page     string            `json:"page"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "Kit", out.Received["title"])
	assert.Equal(t, "2", out.Page)
}

func TestClient_QueryAndRequestID(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/admin/users", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"role":  r.URL.Query().Get("role"),
				"limit": r.URL.Query().Get("limit"),
				"rid":   r.Header.Get(requestid.Header),
			})
		})
	})
	c := newClient(t, srv.URL)

	ctx := requestid.WithContext(context.Background(), "trace-42")
	var out map[string]string
	err := c.GetJSON(ctx, "/admin/users", map[string][]string{"role": {"seller"}, "limit": {"10"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "seller", out["role"])
	assert.Equal(t, "10", out["limit"])
	assert.Equal(t, "trace-42", out["rid"])
}

func TestClient_Failures(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		})
		r.Get("/bare", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		r.Get("/odd", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(599)
		})
	})
	c := newClient(t, srv.URL)
	ctx := context.Background()

	t.Run("payload message", func(t *testing.T) {
		_, err := c.Get(ctx, "/missing", nil)
		require.Error(t, err)
		apiErr, ok := apiclient.AsError(err)
		require.True(t, ok)
		assert.Equal(t, apiclient.KindRequestFailed, apiErr.Kind)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Product not found", err.Error())
		assert.Equal(t, "Product not found", apiclient.MessageOf(err))
	})

	t.Run("status text", func(t *testing.T) {
		_, err := c.Get(ctx, "/bare", nil)
		assert.Equal(t, "Not Found", apiclient.MessageOf(err))
		assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
	})

	t.Run("generic fallback", func(t *testing.T) {
		_, err := c.Get(ctx, "/odd", nil)
		assert.Equal(t, apiclient.FallbackMessage, apiclient.MessageOf(err))
	})

	t.Run("network failure", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()

		_, err := newClient(t, url).Get(ctx, "/x", nil)
		require.Error(t, err)
		assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
		assert.Equal(t, apiclient.FallbackMessage, apiclient.MessageOf(err))
	})
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(r chi.Router) {
		r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
	})
	defer close(release)

	c := newClient(t, srv.URL, apiclient.WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := c.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.Equal(t, apiclient.KindTimeout, apiclient.KindOf(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_Unauthorized(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/admin/users", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
		})
	})

	var calls atomic.Int32
	c := newClient(t, srv.URL, apiclient.WithUnauthorizedHandler(func(ctx context.Context) {
		require.NoError(t, ctx.Err())
		calls.Add(1)
	}))
	var registered atomic.Int32
	c.OnUnauthorized(func(context.Context) { registered.Add(1) })
	c.OnUnauthorized(nil)

	resp, err := c.Get(context.Background(), "/admin/users", nil)
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(1), registered.Load())

	_, err = c.Get(context.Background(), "/admin/users", nil)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, int32(2), calls.Load(), "every 401 runs the handlers")
}

func TestClient_Interceptors(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/h", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"x":  r.Header.Get("X-Console"),
				"ua": r.Header.Get("User-Agent"),
			})
		})
	})

	t.Run("custom interceptor and headers", func(t *testing.T) {
		c := newClient(t, srv.URL,
			apiclient.WithUserAgent("adminctl/test"),
			apiclient.WithRequestInterceptor(func(req *http.Request) error {
				req.Header.Set("X-Console", "yes")
				return nil
			}),
		)
		var out map[string]string
		require.NoError(t, c.GetJSON(context.Background(), "/h", nil, &out))
		assert.Equal(t, "yes", out["x"])
		assert.Equal(t, "adminctl/test", out["ua"])
	})

	t.Run("interceptor error aborts", func(t *testing.T) {
		boom := errors.New("blocked")
		c := newClient(t, srv.URL, apiclient.WithRequestInterceptor(func(*http.Request) error { return boom }))
		_, err := c.Get(context.Background(), "/h", nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestClient_ConcurrentRequests(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/n/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
		})
	})
	c := newClient(t, srv.URL, apiclient.WithTokenSource(apiclient.StaticToken("t")))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out map[string]string
			id := strings.Repeat("x", i+1)
			if err := c.GetJSON(context.Background(), "/n/"+id, nil, &out); err != nil {
				errs <- err
				return
			}
			if out["id"] != id {
				errs <- errors.New("mismatched response")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestClient_Upload(t *testing.T) {
	var got struct {
		body, contentType, auth string
	}
	storageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got.body = string(b)
		got.contentType = r.Header.Get("Content-Type")
		got.auth = r.Header.Get("Authorization")
		if r.URL.Query().Get("sig") != "ok" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer storageSrv.Close()

	c := newClient(t, "https://api.example.com", apiclient.WithTokenSource(apiclient.StaticToken("secret")))

	err := c.Upload(context.Background(), storageSrv.URL+"/bucket/file.pdf?sig=ok", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", got.body)
	assert.Equal(t, "application/pdf", got.contentType)
	assert.Empty(t, got.auth, "presigned uploads never carry the bearer token")

	err = c.Upload(context.Background(), storageSrv.URL+"/bucket/file.pdf?sig=bad", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusOf(err))
	assert.Equal(t, "Forbidden", apiclient.MessageOf(err))
}

func TestClient_UploadFailureIsLogged(t *testing.T) {
	storageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer storageSrv.Close()

	var buf bytes.Buffer
	c := newClient(t, "https://api.example.com",
		apiclient.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)

	err := c.Upload(context.Background(), storageSrv.URL+"/bucket/file.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"upload failed"`)
	assert.Contains(t, buf.String(), "/bucket/file.pdf")
	assert.Contains(t, buf.String(), "403")

	buf.Reset()
	storageSrv.Close()
	err = c.Upload(context.Background(), storageSrv.URL+"/bucket/file.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
	assert.Contains(t, buf.String(), `"msg":"upload failed"`)
	assert.Contains(t, buf.String(), `"kind":"network"`)
}
