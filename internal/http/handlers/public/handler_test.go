package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c
}

func TestAddCartItemRequestBind(t *testing.T) {
	c := newTestContext(t, http.MethodPost, "/api/cart", `{"user_id":3,"product_id":12,"quantity":2}`)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if req.UserID != 3 || req.ProductID != 12 || req.Quantity != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestAddCartItemRequestBindMissingProduct(t *testing.T) {
	c := newTestContext(t, http.MethodPost, "/api/cart", `{"quantity":2}`)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		t.Fatalf("bind should fail without product_id")
	}
}

func TestQueryHelpers(t *testing.T) {
	c := newTestContext(t, http.MethodGet, "/api/products?category_id=5&limit=10&offset=abc", "")

	if got := queryUint(c, "category_id"); got != 5 {
		t.Fatalf("category_id want 5 got %d", got)
	}
	if got := queryInt(c, "limit", 0); got != 10 {
		t.Fatalf("limit want 10 got %d", got)
	}
	if got := queryInt(c, "offset", 7); got != 7 {
		t.Fatalf("invalid offset should fall back, got %d", got)
	}
	if got := queryUint(c, "missing"); got != 0 {
		t.Fatalf("missing query should be 0, got %d", got)
	}
}

func TestParamUint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	if got := paramUint(c, "id"); got != 42 {
		t.Fatalf("id want 42 got %d", got)
	}
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if got := paramUint(c, "id"); got != 0 {
		t.Fatalf("invalid id want 0 got %d", got)
	}
}
