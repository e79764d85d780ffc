// mock-gateway is a local Paystack stand-in for end-to-end runs: it answers
// transaction-initialize calls and, on demand, fires signed webhooks at the
// service the way the real gateway would.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/signature"
)

type transaction struct {
	Email       string
	Amount      int64
	AdmissionID string
}

type mockGateway struct {
	mu           sync.Mutex
	transactions map[string]transaction

	secretKey  string
	webhookURL string
	baseURL    string
}

type initializeRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
	Metadata  struct {
		AdmissionID string `json:"admissionId"`
	} `json:"metadata"`
}

func (g *mockGateway) initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reference == "" || req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": false, "message": "invalid request"})
		return
	}

	g.mu.Lock()
	g.transactions[req.Reference] = transaction{
		Email:       req.Email,
		Amount:      req.Amount,
		AdmissionID: req.Metadata.AdmissionID,
	}
	g.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"message": "Authorization URL created",
		"data": map[string]string{
			"authorization_url": fmt.Sprintf("%s/pay/%s", g.baseURL, req.Reference),
			"access_code":       "AC_" + req.Reference,
		},
	})
}

// settle simulates the payer finishing (or abandoning) checkout: it emits a
// signed charge event to the configured webhook URL.
func (g *mockGateway) settle(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("reference")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "success"
	}

	g.mu.Lock()
	tx, ok := g.transactions[ref]
	g.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": false, "message": "unknown reference"})
		return
	}

	event := map[string]any{
		"event": "charge." + status,
		"data": map[string]any{
			"reference": ref,
			"status":    status,
			"amount":    tx.Amount,
			"metadata":  map[string]string{"admissionId": tx.AdmissionID},
		},
	}
	body, err := json.Marshal(event)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": false, "message": "marshal failed"})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, g.webhookURL, bytes.NewReader(body))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": false, "message": "build webhook failed"})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Paystack-Signature", signature.Sign(g.secretKey, body))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		slog.Error("webhook delivery failed", "reference", ref, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"status": false, "message": "webhook delivery failed"})
		return
	}
	defer resp.Body.Close()

	slog.Info("webhook delivered", "reference", ref, "status", status, "response", resp.StatusCode)
	writeJSON(w, http.StatusOK, map[string]any{"status": true, "delivered": resp.StatusCode})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func main() {
	logging.Init("mock-gateway", "info", os.Getenv("APP_ENV"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL == "" {
		webhookURL = "http://localhost:8080/webhooks/paystack"
	}

	g := &mockGateway{
		transactions: make(map[string]transaction),
		secretKey:    os.Getenv("PAYSTACK_SECRET_KEY"),
		webhookURL:   webhookURL,
		baseURL:      "http://localhost:" + port,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /transaction/initialize", g.initialize)
	mux.HandleFunc("POST /pay/{reference}/settle", g.settle)

	slog.Info("mock gateway started", "addr", ":"+port, "webhook_url", webhookURL)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
