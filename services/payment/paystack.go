package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// requestTimeout bounds every outbound gateway call so a hung remote cannot
// hold an open transaction indefinitely.
const requestTimeout = 30 * time.Second

// PaystackClient implements Gateway against the Paystack REST API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewPaystackClient constructs a gateway client. The instance is injected into
// the booking service and webhook handler at startup; there is no package
// singleton.
func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: requestTimeout},
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
	Currency  string `json:"currency"`
}

type refundData struct {
	Transaction struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
	} `json:"transaction"`
	Status string `json:"status"`
}

// Initialize starts a hosted checkout transaction.
func (c *PaystackClient) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	body := map[string]any{
		"email":        req.Email,
		"amount":       req.Amount,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
		"metadata":     req.Metadata,
		"currency":     "NGN",
	}

	var data initializeData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, "initialize", &data); err != nil {
		return nil, err
	}
	return &InitializeResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the gateway's record of a transaction by reference.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var data verifyData
	path := fmt.Sprintf("/transaction/verify/%s", reference)
	if err := c.do(ctx, http.MethodGet, path, nil, "verify", &data); err != nil {
		return nil, err
	}

	paidAt, _ := time.Parse(time.RFC3339, data.PaidAt)
	return &VerifyResult{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    data.Amount,
		Channel:   data.Channel,
		PaidAt:    paidAt,
		Currency:  data.Currency,
	}, nil
}

// Refund issues a partial refund against a transaction.
func (c *PaystackClient) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	body := map[string]any{
		"transaction":   req.Reference,
		"amount":        req.Amount,
		"merchant_note": req.MerchantNote,
		"customer_note": req.CustomerNote,
		"currency":      "NGN",
	}

	var data refundData
	if err := c.do(ctx, http.MethodPost, "/refund", body, "refund", &data); err != nil {
		return nil, err
	}
	return &RefundResult{
		RefundReference: data.Transaction.Reference,
		Status:          data.Status,
	}, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: a hex
// HMAC-SHA512 of the raw payload keyed with the secret key.
func (c *PaystackClient) VerifyWebhookSignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// do executes a request and unwraps the Paystack response envelope.
func (c *PaystackClient) do(ctx context.Context, method, path string, body any, op string, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &GatewayError{Op: op, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &GatewayError{Op: op, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Op: op, Message: "failed to read response", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &GatewayError{Op: op, Message: fmt.Sprintf("invalid response (HTTP %d)", resp.StatusCode), Err: err}
	}
	if resp.StatusCode >= 400 || !env.Status {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &GatewayError{Op: op, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &GatewayError{Op: op, Message: "failed to decode response data", Err: err}
		}
	}
	return nil
}
