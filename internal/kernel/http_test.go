package kernel_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	_ "github.com/shashiranjanraj/lodge/database/migrations"
	"github.com/shashiranjanraj/lodge/internal/kernel"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/storage"
	"github.com/shashiranjanraj/lodge/pkg/testkit"
)

type app struct {
	db      *gorm.DB
	h       http.Handler
	product models.Product
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := testkit.DB(t)

	gw, err := auth.NewLocalGateway(db, auth.LocalOptions{
		Secret:      []byte("kernel-test-secret"),
		AdminEmails: []string{"admin@shop.test"},
	})
	require.NoError(t, err)
	disk, err := storage.NewLocalDisk(t.TempDir(), "http://cdn.test/storage")
	require.NoError(t, err)

	k, err := kernel.NewHTTPKernel(db, gw, disk)
	require.NoError(t, err)

	cat := models.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, db.Create(&cat).Error)
	p := models.Product{Name: "Hoodie", Price: decimal.RequireFromString("10"), CategoryID: cat.ID, ImageURL: "http://img/h.jpg"}
	require.NoError(t, db.Omit("Category").Create(&p).Error)

	return &app{db: db, h: k.Handler(), product: p}
}

func (a *app) signUp(t *testing.T, email string) string {
	t.Helper()
	res := testkit.Call(t, a.h, "POST", "/api/auth/signup", map[string]string{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))

	var s auth.Session
	res.Decode(t, &s)
	require.NotEmpty(t, s.AccessToken)
	return s.AccessToken
}

func sessionCookie(t *testing.T, res *testkit.Result) string {
	t.Helper()
	for _, c := range res.Cookies {
		if c.Name == "lodge_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatalf("no session cookie in %v", res.Header)
	return ""
}

func TestHealthAndMissingRoute(t *testing.T) {
	a := newApp(t)

	res := testkit.Call(t, a.h, "GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	res = testkit.Call(t, a.h, "GET", "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Not found", res.Message)
}

func TestCatalogIsPublic(t *testing.T) {
	a := newApp(t)

	res := testkit.Call(t, a.h, "GET", "/api/products?category=apparel", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var products []map[string]interface{}
	res.Decode(t, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Hoodie", products[0]["name"])

	res = testkit.Call(t, a.h, "POST", "/graphql", map[string]string{"query": "{ categories { slug } }"})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, string(res.Body), `"slug":"apparel"`)
}

func TestSignedInRoutesNeedAToken(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/api/orders", "/api/wallet/balance", "/api/profile", "/api/auth/me"} {
		res := testkit.Call(t, a.h, "GET", path, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, path)
	}

	res := testkit.Call(t, a.h, "GET", "/api/orders", nil, "Authorization", "Bearer junk")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAdminRoutesNeedTheAdminRole(t *testing.T) {
	a := newApp(t)

	user := a.signUp(t, "shopper@shop.test")
	res := testkit.Call(t, a.h, "GET", "/api/admin/orders", nil, "Authorization", "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, res.Code)

	admin := a.signUp(t, "admin@shop.test")
	res = testkit.Call(t, a.h, "GET", "/api/admin/orders", nil, "Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestCartToWalletCheckout(t *testing.T) {
	a := newApp(t)
	token := a.signUp(t, "buyer@shop.test")
	bearer := "Bearer " + token

	res := testkit.Call(t, a.h, "POST", "/api/cart/items", map[string]interface{}{"product_id": a.product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))
	cookie := sessionCookie(t, res)

	var view struct {
		Count int    `json:"count"`
		Total string `json:"total"`
	}
	res.Decode(t, &view)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "42.9", view.Total)

	order := map[string]interface{}{
		"shipping": map[string]string{
			"name": "Ada Lovelace", "street": "1 Main St", "city": "Austin",
			"state": "TX", "zip": "73301", "country": "US", "phone": "555-0100",
		},
		"shipping_provider": "ups",
		"payment_method":    "wallet",
	}

	// Fresh profile, zero balance.
	res = testkit.Call(t, a.h, "POST", "/api/checkout", order, "Authorization", bearer, "Cookie", cookie)
	assert.Equal(t, http.StatusPaymentRequired, res.Code, string(res.Body))

	res = testkit.Call(t, a.h, "GET", "/api/auth/me", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, res.Code)
	var me struct {
		User auth.Identity `json:"user"`
	}
	res.Decode(t, &me)
	require.NoError(t, a.db.Model(&models.Profile{}).Where("id = ?", me.User.UserID).
		Update("wallet_balance", decimal.RequireFromString("100")).Error)

	res = testkit.Call(t, a.h, "POST", "/api/checkout", order, "Authorization", bearer, "Cookie", cookie)
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))
	var placed struct {
		ID    string `json:"id"`
		Total string `json:"total_amount"`
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	res.Decode(t, &placed)
	assert.Equal(t, "42.9", placed.Total)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Hoodie", placed.Items[0].Name)

	res = testkit.Call(t, a.h, "GET", "/api/cart", nil, "Cookie", cookie)
	res.Decode(t, &view)
	assert.Zero(t, view.Count)

	res = testkit.Call(t, a.h, "GET", "/api/wallet/balance", nil, "Authorization", bearer)
	assert.True(t, strings.Contains(string(res.Data), "57.1"), string(res.Data))

	res = testkit.Call(t, a.h, "GET", "/api/orders/"+placed.ID, nil, "Authorization", bearer)
	assert.Equal(t, http.StatusOK, res.Code)
}
