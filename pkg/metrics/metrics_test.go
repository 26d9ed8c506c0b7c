package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lodge/pkg/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/"+id, nil))
	}

	body := scrape(t)
	assert.Contains(t, body, `lodge_http_requests_total{method="GET",route="/products/{id}",status="418"} 2`)
	assert.NotContains(t, body, `route="/products/a"`)
}

func TestHandlerServesDomainCounters(t *testing.T) {
	metrics.OrdersPlaced.WithLabelValues("wallet").Inc()
	assert.Contains(t, scrape(t), "lodge_shop_orders_placed_total")
}
