package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"points-backend/internal/client"
	"points-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductClient_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/products/p1", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"code":    200,
				"message": "success",
				"data": map[string]any{
					"id": "p1", "name": "Mug", "points": 100, "stock": 10, "monthly_limit": 3,
				},
			})
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		product, err := c.Fetch(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Mug", product.Name)
		assert.Equal(t, int32(100), product.Points)
		assert.Equal(t, int32(10), product.Stock)
		assert.Equal(t, int32(3), product.MonthlyLimit)
	})

	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		_, err := c.Fetch(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("Envelope Error Code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"code": 404, "message": "no such product"})
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		_, err := c.Fetch(ctx, "p1")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		_, err := c.Fetch(ctx, "p1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestProductClient_DecrementStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/products/p1/usage", r.URL.Path)

			var body struct {
				Quantity int32  `json:"quantity"`
				UserID   string `json:"user_id"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int32(2), body.Quantity)
			assert.Equal(t, "u1", body.UserID)

			json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "success"})
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		assert.NoError(t, c.DecrementStock(ctx, "p1", 2, "u1"))
	})

	t.Run("Remote Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		c := client.NewProductClient(server.URL, 5*time.Second)
		err := c.DecrementStock(ctx, "p1", 2, "u1")
		assert.Error(t, err)
	})

	t.Run("Unreachable Service", func(t *testing.T) {
		c := client.NewProductClient("http://127.0.0.1:1", 500*time.Millisecond)
		err := c.DecrementStock(ctx, "p1", 1, "u1")
		assert.Error(t, err)
	})
}
