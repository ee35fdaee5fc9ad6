// Package billing talks to the Stripe REST API.
package billing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clementatt/Stripe-customers-import/internal/config"
	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"
	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	customersPath = "/v1/customers"
	userAgent     = "stripe-customers-import/1.0"
)

// APIError is an error response returned by Stripe.
type APIError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Param      string `json:"param"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	kind := e.Type
	if kind == "" {
		kind = "api_error"
	}
	if e.Code != "" {
		return fmt.Sprintf("stripe %s (%d, %s): %s", kind, e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("stripe %s (%d): %s", kind, e.StatusCode, msg)
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

type customerResponse struct {
	ID string `json:"id"`
}

// Client creates customer records in Stripe.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

// NewClient builds a client authenticated with the configured secret key.
// Requests are never retried and carry no timeout.
func NewClient(cfg config.AppConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.StripeAPIBase).
		SetAuthToken(cfg.StripeSecretKey).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)

	if cfg.LogLevel == "debug" {
		client.SetLogger(logger.Sugar()).
			OnRequestLog(redactCredentials).
			SetDebug(true)
	}

	return &Client{client: client, logger: logger}
}

// redactCredentials keeps the secret key out of debug request dumps.
func redactCredentials(rl *resty.RequestLog) error {
	rl.Header.Del("Authorization")
	return nil
}

// CreateCustomer issues one create-customer call and returns the new
// customer id.
func (c *Client) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(formData(req)).
		SetResult(&customerResponse{}).
		SetError(&errorEnvelope{}).
		Post(customersPath)
	if err != nil {
		return "", xerrors.Wrap(err, "create customer request")
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if env, ok := resp.Error().(*errorEnvelope); ok && env.Error != nil {
			apiErr = env.Error
			apiErr.StatusCode = resp.StatusCode()
		}
		c.logger.Debug("stripe rejected customer",
			zap.Int("status", apiErr.StatusCode),
			zap.String("type", apiErr.Type),
			zap.String("code", apiErr.Code),
		)
		return "", apiErr
	}

	out, ok := resp.Result().(*customerResponse)
	if !ok || out.ID == "" {
		return "", fmt.Errorf("create customer: response has no customer id (status %d)", resp.StatusCode())
	}
	return out.ID, nil
}

// formData encodes req the way Stripe expects form parameters, with
// metadata flattened to metadata[key].
func formData(req *customer.CreateCustomerRequest) map[string]string {
	form := map[string]string{
		"name":        req.Name,
		"description": req.Description,
	}
	for k, v := range req.Metadata {
		form["metadata["+k+"]"] = v
	}
	if req.Phone != nil {
		form["phone"] = *req.Phone
	}
	if req.Email != nil {
		form["email"] = *req.Email
	}
	return form
}
