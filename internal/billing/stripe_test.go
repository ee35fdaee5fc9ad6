package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type capturedRequest struct {
	auth     string
	form     map[string]string
	metadata map[string]string
	hasPhone bool
	hasEmail bool
}

func newFakeStripe(t *testing.T, handler gin.HandlerFunc) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/v1/customers", handler)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(baseURL string) *Client {
	return NewClient(config.AppConfig{StripeSecretKey: "sk_test_abc", StripeAPIBase: baseURL}, zap.NewNop())
}

func ptr(s string) *string { return &s }

func TestClient_CreateCustomer(t *testing.T) {
	t.Run("Should post the form and return the customer id", func(t *testing.T) {
		var got capturedRequest
		srv := newFakeStripe(t, func(c *gin.Context) {
			got.auth = c.GetHeader("Authorization")
			got.form = map[string]string{
				"name":        c.PostForm("name"),
				"description": c.PostForm("description"),
				"phone":       c.PostForm("phone"),
				"email":       c.PostForm("email"),
			}
			got.metadata = c.PostFormMap("metadata")
			_, got.hasPhone = c.GetPostForm("phone")
			_, got.hasEmail = c.GetPostForm("email")
			c.JSON(http.StatusOK, gin.H{"id": "cus_123", "object": "customer"})
		})

		id, err := newClient(srv.URL).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{
			Name:        "Alice",
			Description: "order number: ORD1",
			Metadata:    map[string]string{"order_number": "ORD1", "duration_days": "3"},
			Phone:       ptr("+15551234567"),
			Email:       ptr("a@b.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "cus_123", id)

		assert.Equal(t, "Bearer sk_test_abc", got.auth)
		assert.Equal(t, "Alice", got.form["name"])
		assert.Equal(t, "order number: ORD1", got.form["description"])
		assert.Equal(t, "+15551234567", got.form["phone"])
		assert.Equal(t, "a@b.com", got.form["email"])
		assert.Equal(t, map[string]string{"order_number": "ORD1", "duration_days": "3"}, got.metadata)
	})

	t.Run("Should leave out optional contact fields", func(t *testing.T) {
		var got capturedRequest
		srv := newFakeStripe(t, func(c *gin.Context) {
			_, got.hasPhone = c.GetPostForm("phone")
			_, got.hasEmail = c.GetPostForm("email")
			c.JSON(http.StatusOK, gin.H{"id": "cus_456"})
		})

		_, err := newClient(srv.URL).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{
			Name:     "Bob",
			Metadata: map[string]string{},
		})
		require.NoError(t, err)
		assert.False(t, got.hasPhone)
		assert.False(t, got.hasEmail)
	})

	t.Run("Should return a typed error for Stripe error responses", func(t *testing.T) {
		srv := newFakeStripe(t, func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"type":    "invalid_request_error",
				"code":    "email_invalid",
				"param":   "email",
				"message": "Invalid email address: x@",
			}})
		})

		_, err := newClient(srv.URL).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "X"})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "email_invalid", apiErr.Code)
		assert.Equal(t, "email", apiErr.Param)
		assert.Equal(t, "stripe invalid_request_error (400, email_invalid): Invalid email address: x@", err.Error())
	})

	t.Run("Should classify non JSON failures by status", func(t *testing.T) {
		srv := newFakeStripe(t, func(c *gin.Context) {
			c.String(http.StatusBadGateway, "upstream down")
		})

		_, err := newClient(srv.URL).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "X"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Contains(t, err.Error(), "Bad Gateway")
	})

	t.Run("Should surface transport errors", func(t *testing.T) {
		srv := newFakeStripe(t, func(c *gin.Context) {})
		url := srv.URL
		srv.Close()

		_, err := newClient(url).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "X"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create customer request")
	})

	t.Run("Should reject a success without an id", func(t *testing.T) {
		srv := newFakeStripe(t, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"object": "customer"})
		})

		_, err := newClient(srv.URL).CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "X"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no customer id")
	})
}

func TestClient_DebugLogging(t *testing.T) {
	t.Run("Should route request dumps through zap without the secret key", func(t *testing.T) {
		var auth string
		srv := newFakeStripe(t, func(c *gin.Context) {
			auth = c.GetHeader("Authorization")
			c.JSON(http.StatusOK, gin.H{"id": "cus_dbg"})
		})

		core, logs := observer.New(zapcore.DebugLevel)
		client := NewClient(config.AppConfig{
			StripeSecretKey: "sk_live_SECRET",
			StripeAPIBase:   srv.URL,
			LogLevel:        "debug",
		}, zap.New(core))

		id, err := client.CreateCustomer(context.Background(), &customer.CreateCustomerRequest{Name: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "cus_dbg", id)
		assert.Equal(t, "Bearer sk_live_SECRET", auth)

		var dumped bool
		for _, entry := range logs.All() {
			assert.NotContains(t, entry.Message, "sk_live_SECRET")
			if strings.Contains(entry.Message, "/v1/customers") {
				dumped = true
			}
		}
		assert.True(t, dumped, "expected the request dump in the zap logger")
	})
}
