package stripe

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	cfg := &Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: "whsec_123",
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
	if err := ValidateConfig(&Config{}); err == nil {
		t.Fatalf("expected config error for missing secret key")
	}
	if err := ValidateConfig(&Config{SecretKey: "sk_test_123", APIBaseURL: "::bad"}); err == nil {
		t.Fatalf("expected config error for invalid api base url")
	}
}

func TestToMinorAmount(t *testing.T) {
	minor, err := toMinorAmount("12.34", "USD")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 1234 {
		t.Fatalf("unexpected minor amount: %d", minor)
	}
	minor, err = toMinorAmount("500", "JPY")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 500 {
		t.Fatalf("unexpected zero-decimal minor amount: %d", minor)
	}
	if _, err := toMinorAmount("0", "USD"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
	if _, err := toMinorAmount("abc", "USD"); err == nil {
		t.Fatalf("expected error for invalid amount")
	}
}

func TestVerifyAndParseWebhookCheckoutCompleted(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "checkout.session",
				"id":             "cs_test_123",
				"payment_status": "paid",
				"currency":       "usd",
				"amount_total":   1288,
				"created":        now.Unix(),
				"metadata": map[string]interface{}{
					"order_no": "AD-1001",
					"user_id":  "1",
				},
			},
		},
	}
	body, _ := json.Marshal(payload)
	sig := computeSignature(cfg.WebhookSecret, now.Unix(), body)
	headers := map[string]string{
		"Stripe-Signature": "t=1760000000,v1=" + sig,
	}

	result, err := VerifyAndParseWebhook(cfg, headers, body, now)
	if err != nil {
		t.Fatalf("verify and parse webhook failed: %v", err)
	}
	if result.EventType != "checkout.session.completed" {
		t.Fatalf("unexpected event type: %s", result.EventType)
	}
	if result.OrderNo != "AD-1001" {
		t.Fatalf("unexpected order no: %s", result.OrderNo)
	}
	if result.SessionID != "cs_test_123" {
		t.Fatalf("unexpected session id: %s", result.SessionID)
	}
	if result.Status != "success" {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Amount != "12.88" {
		t.Fatalf("unexpected amount: %s", result.Amount)
	}
}

func TestVerifyAndParseWebhookInvalidSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object": "checkout.session",
				"id":     "cs_test_123",
			},
		},
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"Stripe-Signature": "t=1760000000,v1=invalid-signature",
	}

	_, err := VerifyAndParseWebhook(cfg, headers, body, now)
	if err == nil {
		t.Fatalf("expected verify error")
	}
}

func TestVerifyAndParseWebhookTimestampOutsideTolerance(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object": "checkout.session",
				"id":     "cs_test_123",
			},
		},
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"Stripe-Signature": "t=1759999400,v1=" + computeSignature(cfg.WebhookSecret, 1759999400, body),
	}
	_, err := VerifyAndParseWebhook(cfg, headers, body, now)
	if err == nil {
		t.Fatalf("expected tolerance error")
	}
}

func TestMapCheckoutSessionStatus(t *testing.T) {
	if got := mapCheckoutSessionStatus("paid", "complete"); got != "success" {
		t.Fatalf("expected success, got %s", got)
	}
	if got := mapCheckoutSessionStatus("unpaid", "expired"); got != "expired" {
		t.Fatalf("expected expired, got %s", got)
	}
	if got := mapCheckoutSessionStatus("unpaid", "open"); got != "pending" {
		t.Fatalf("expected pending, got %s", got)
	}
}
