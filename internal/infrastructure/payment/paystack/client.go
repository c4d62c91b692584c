package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.paystack.co"
	requestTimeout = 10 * time.Second
)

// Client talks to the Paystack REST API. It implements ports.PaymentProvider.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type initializeRequest struct {
	Email    string              `json:"email"`
	Amount   int64               `json:"amount"`
	Currency string              `json:"currency"`
	Metadata transactionMetadata `json:"metadata"`
}

type transactionMetadata struct {
	OrgID    string `json:"orgId"`
	PlanID   string `json:"planId"`
	UserID   string `json:"userId"`
	PlanName string `json:"planName"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string              `json:"status"`
		Metadata transactionMetadata `json:"metadata"`
	} `json:"data"`
}

// InitializeTransaction starts a hosted checkout session and returns the
// redirect URL plus the reference that keys the settlement.
func (c *Client) InitializeTransaction(ctx context.Context, in ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	payload := initializeRequest{
		Email:    in.Email,
		Amount:   in.Amount,
		Currency: in.Currency,
		Metadata: transactionMetadata{
			OrgID:    in.Metadata.OrgID,
			PlanID:   in.Metadata.PlanID,
			UserID:   in.Metadata.UserID,
			PlanName: in.Metadata.PlanName,
		},
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack initialize: %s", resp.Message)
	}

	return &ports.InitializeTransactionResult{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// VerifyTransaction fetches the authoritative outcome for a reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*ports.TransactionStatus, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack verify: %s", resp.Message)
	}

	return &ports.TransactionStatus{
		Status: resp.Data.Status,
		Metadata: ports.TransactionMetadata{
			OrgID:    resp.Data.Metadata.OrgID,
			PlanID:   resp.Data.Metadata.PlanID,
			UserID:   resp.Data.Metadata.UserID,
			PlanName: resp.Data.Metadata.PlanName,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paystack encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paystack build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("paystack request: status %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("paystack decode response: %w", err)
	}
	return nil
}
