package worker

import (
	"strings"
	"testing"

	"github.com/autodrop-platform/autodrop/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderPaidEmailBodyNilOrder(t *testing.T) {
	if got := buildOrderPaidEmailBody(nil); got != "" {
		t.Fatalf("expected empty body for nil order, got %q", got)
	}
}

func TestBuildOrderPaidEmailBodyListsItems(t *testing.T) {
	order := &models.Order{
		OrderNo:     "AD20260101000000000001",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(24.68)),
		Items: models.JSONArray{
			{"title": "Wireless Earbuds", "quantity": float64(2)},
			{"title": "Phone Case"},
			{"quantity": float64(3)},
		},
	}

	body := buildOrderPaidEmailBody(order)
	if !strings.Contains(body, "AD20260101000000000001") {
		t.Fatalf("expected order no in body, got %q", body)
	}
	if !strings.Contains(body, "Total: 24.68") {
		t.Fatalf("expected total in body, got %q", body)
	}
	if !strings.Contains(body, "- Wireless Earbuds x2") {
		t.Fatalf("expected quantified item line, got %q", body)
	}
	if !strings.Contains(body, "- Phone Case") {
		t.Fatalf("expected item line without quantity, got %q", body)
	}
	if strings.Count(body, "- ") != 2 {
		t.Fatalf("expected untitled items skipped, got %q", body)
	}
}
