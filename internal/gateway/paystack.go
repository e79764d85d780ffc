// Package gateway is the client side of the Paystack HTTP API. Only the
// transaction-initialize call is used; everything after that arrives on the
// webhook.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cityview-school/admissions-payments/internal/domain"
	"github.com/cityview-school/admissions-payments/internal/logging"
)

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// InitializeRequest carries one transaction-initialize call. AmountMinor is in
// the gateway's minor unit (kobo), already converted by the caller.
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Reference   string
	AdmissionID string
}

// Authorization is the handle the gateway returns for a freshly initialized
// transaction. The caller redirects the payer to URL.
type Authorization struct {
	URL        string
	AccessCode string
}

type initializePayload struct {
	Email     string          `json:"email"`
	Amount    int64           `json:"amount"`
	Reference string          `json:"reference"`
	Metadata  payloadMetadata `json:"metadata"`
}

type payloadMetadata struct {
	AdmissionID string `json:"admissionId"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
	} `json:"data"`
}

func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*Authorization, error) {
	log := logging.FromContext(ctx)

	body, err := json.Marshal(initializePayload{
		Email:     req.Email,
		Amount:    req.AmountMinor,
		Reference: req.Reference,
		Metadata:  payloadMetadata{AdmissionID: req.AdmissionID},
	})
	if err != nil {
		return nil, fmt.Errorf("InitializeTransaction: marshal: %w", err)
	}

	url := c.baseURL + "/transaction/initialize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("InitializeTransaction: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("InitializeTransaction: send: %w", domain.ErrGatewayFailure)
	}
	defer resp.Body.Close()

	log.Info("gateway response received",
		"status", resp.StatusCode,
		"reference", req.Reference,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("gateway rejected initialize", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("InitializeTransaction: unexpected status %d: %w", resp.StatusCode, domain.ErrGatewayFailure)
	}

	var decoded initializeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("InitializeTransaction: decode: %w", domain.ErrGatewayFailure)
	}
	if !decoded.Status || decoded.Data == nil {
		return nil, fmt.Errorf("InitializeTransaction: gateway declined (%s): %w", decoded.Message, domain.ErrGatewayFailure)
	}

	return &Authorization{
		URL:        decoded.Data.AuthorizationURL,
		AccessCode: decoded.Data.AccessCode,
	}, nil
}
