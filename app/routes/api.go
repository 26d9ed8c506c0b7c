// Package routes registers lodge's HTTP API.
package routes

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/controllers"
	"github.com/shashiranjanraj/lodge/app/schema"
	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
	"github.com/shashiranjanraj/lodge/pkg/graphql"
	"github.com/shashiranjanraj/lodge/pkg/middleware"
	"github.com/shashiranjanraj/lodge/pkg/rbac"
	"github.com/shashiranjanraj/lodge/pkg/router"
	"github.com/shashiranjanraj/lodge/pkg/storage"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	DB           *gorm.DB
	Gateway      auth.Gateway
	Disk         storage.Disk
	ImagePrefix  string
	PollInterval time.Duration
}

// RegisterAPI mounts the /api resources and the read-only /graphql
// endpoint on r.
func RegisterAPI(r *router.Router, d Deps) error {
	catalogSvc := services.NewCatalogService(d.DB)
	orderSvc := services.NewOrderService(d.DB)
	walletSvc := services.NewWalletService(d.DB)
	profileSvc := services.NewProfileService(d.DB)

	gql, err := schema.New(catalogSvc)
	if err != nil {
		return fmt.Errorf("routes: build graphql schema: %w", err)
	}

	authC := controllers.NewAuthController(d.Gateway, profileSvc)
	catalogC := controllers.NewCatalogController(catalogSvc)
	cartC := controllers.NewCartController(catalogSvc)
	checkoutC := controllers.NewCheckoutController(services.NewCheckoutService(d.DB), orderSvc)
	orderC := controllers.NewOrderController(orderSvc)
	walletC := controllers.NewWalletController(walletSvc, services.NewBalanceWatcher(walletSvc, d.PollInterval))
	adminC := controllers.NewAdminController(services.NewAdminService(d.DB, d.Disk, d.ImagePrefix))
	profileC := controllers.NewProfileController(profileSvc)

	r.Get("/graphql", "graphql.query", graphql.Handler(gql))
	r.Post("/graphql", "graphql", graphql.Handler(gql))

	api := r.Group("/api", middleware.Authenticate(d.Gateway))

	// ── Public ──────────────────────────────────────────────────────────────
	api.Post("/auth/signup", "auth.signup", ctx.Wrap(authC.SignUp))
	api.Post("/auth/signin", "auth.signin", ctx.Wrap(authC.SignIn))
	api.Post("/auth/reset-password", "auth.reset", ctx.Wrap(authC.ResetPassword))
	api.Post("/auth/resend-verification", "auth.resend", ctx.Wrap(authC.ResendVerification))

	api.Get("/products", "products.index", ctx.Wrap(catalogC.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(catalogC.Show))
	api.Get("/categories", "categories.index", ctx.Wrap(catalogC.Categories))

	api.Get("/cart", "cart.show", ctx.Wrap(cartC.Show))
	api.Post("/cart/items", "cart.add", ctx.Wrap(cartC.Add))
	api.Put("/cart/items/{id}", "cart.update", ctx.Wrap(cartC.Update))
	api.Delete("/cart/items/{id}", "cart.remove", ctx.Wrap(cartC.Remove))
	api.Delete("/cart", "cart.clear", ctx.Wrap(cartC.Clear))

	// ── Signed in ───────────────────────────────────────────────────────────
	user := api.Group("", rbac.RequireAuth)
	user.Get("/auth/me", "auth.me", ctx.Wrap(authC.Me))
	user.Put("/auth/password", "auth.password", ctx.Wrap(authC.UpdatePassword))
	user.Put("/auth/email", "auth.email", ctx.Wrap(authC.UpdateEmail))

	user.Post("/checkout", "checkout.place", ctx.Wrap(checkoutC.Place))
	user.Get("/orders", "orders.index", ctx.Wrap(orderC.Index))
	user.Get("/orders/{id}", "orders.show", ctx.Wrap(orderC.Show))

	user.Get("/wallet/balance", "wallet.balance", ctx.Wrap(walletC.Balance))
	user.Get("/wallet/balance/stream", "wallet.balance.stream", ctx.Wrap(walletC.Stream))
	user.Get("/wallet/transactions", "wallet.transactions", ctx.Wrap(walletC.Transactions))
	user.Get("/wallet/transactions/{id}", "wallet.transactions.show", ctx.Wrap(walletC.Transaction))
	user.Get("/wallet/addresses", "wallet.addresses", ctx.Wrap(walletC.Addresses))
	user.Post("/wallet/deposits", "wallet.deposit", ctx.Wrap(walletC.Deposit))
	user.Post("/wallet/withdrawals", "wallet.withdraw", ctx.Wrap(walletC.Withdraw))

	user.Get("/profile", "profile.show", ctx.Wrap(profileC.Show))
	user.Put("/profile", "profile.update", ctx.Wrap(profileC.Update))

	// ── Admin ───────────────────────────────────────────────────────────────
	admin := api.Group("/admin", rbac.HasRole(auth.RoleAdmin))
	admin.Get("/orders", "admin.orders", ctx.Wrap(adminC.Orders))
	admin.Post("/orders/{id}/fulfill", "admin.orders.fulfill", ctx.Wrap(adminC.Fulfill))
	admin.Get("/products", "admin.products", ctx.Wrap(adminC.Products))
	admin.Post("/products", "admin.products.create", ctx.Wrap(adminC.CreateProduct))
	admin.Put("/products/{id}", "admin.products.update", ctx.Wrap(adminC.UpdateProduct))
	admin.Delete("/products/{id}", "admin.products.delete", ctx.Wrap(adminC.DeleteProduct))
	admin.Post("/products/images", "admin.products.image", ctx.Wrap(adminC.UploadImage))
	admin.Put("/wallets/{user_id}", "admin.wallets.set", ctx.Wrap(adminC.SetBalance))

	return nil
}
