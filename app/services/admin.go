package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
	"github.com/shashiranjanraj/lodge/pkg/storage"
)

// ProductInput creates a product when ID is empty and updates it otherwise.
type ProductInput struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"        validate:"notblank,max=255"`
	Description string           `json:"description" validate:"notblank"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	CategoryID  string           `json:"category_id" validate:"notblank"`
	ImageURL    string           `json:"image_url"   validate:"notblank,max=1024"`
}

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// AdminService backs the admin console: fulfillment, product management
// and manual wallet settlement.
type AdminService struct {
	catalog  *repositories.CatalogRepository
	orders   *repositories.OrderRepository
	profiles *repositories.ProfileRepository
	disk     storage.Disk
	prefix   string
	now      func() time.Time
}

// NewAdminService stores product images on disk under imagePrefix.
func NewAdminService(db *gorm.DB, disk storage.Disk, imagePrefix string) *AdminService {
	return &AdminService{
		catalog:  repositories.NewCatalogRepository(db),
		orders:   repositories.NewOrderRepository(db),
		profiles: repositories.NewProfileRepository(db),
		disk:     disk,
		prefix:   strings.Trim(imagePrefix, "/"),
		now:      time.Now,
	}
}

// ListOrders returns every order, newest first.
func (s *AdminService) ListOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orderViews(orders), nil
}

// FulfillOrder marks the order fulfilled with a tracking number. A blank
// tracking number leaves the order untouched.
func (s *AdminService) FulfillOrder(ctx context.Context, orderID, trackingNumber string) (OrderView, error) {
	tracking := strings.TrimSpace(trackingNumber)
	if tracking == "" {
		return OrderView{}, ErrTrackingRequired
	}

	ok, err := s.orders.MarkFulfilled(ctx, orderID, tracking)
	if err != nil {
		return OrderView{}, fmt.Errorf("fulfill order: %w", err)
	}
	if !ok {
		return OrderView{}, ErrNotFound
	}

	o, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return OrderView{}, notFound(err)
	}

	metrics.OrdersFulfilled.Inc()
	logger.WithCtx(ctx).Info("admin: order fulfilled", "order_id", orderID, "tracking_number", tracking)
	return orderView(o), nil
}

// ListProducts returns every product, newest first.
func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.catalog.ListNewest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpsertProduct validates in and creates or updates the product.
func (s *AdminService) UpsertProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := checkInput(in); err != nil {
		return models.Product{}, err
	}
	if in.Price.IsNegative() {
		return models.Product{}, fieldError("price", "The price must be at least 0.")
	}
	if _, err := s.catalog.FindCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, &ValidationError{Fields: map[string]string{"category_id": ErrInvalidCategory.Error()}}
		}
		return models.Product{}, fmt.Errorf("load category: %w", err)
	}

	p := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CategoryID:  in.CategoryID,
	}

	if in.ID == "" {
		if err := s.catalog.CreateProduct(ctx, &p); err != nil {
			return models.Product{}, fmt.Errorf("create product: %w", err)
		}
		logger.WithCtx(ctx).Info("admin: product created", "product_id", p.ID)
	} else {
		p.ID = in.ID
		ok, err := s.catalog.UpdateProduct(ctx, &p)
		if err != nil {
			return models.Product{}, fmt.Errorf("update product: %w", err)
		}
		if !ok {
			return models.Product{}, ErrNotFound
		}
		logger.WithCtx(ctx).Info("admin: product updated", "product_id", p.ID)
	}
	s.catalog.ForgetCategories()

	saved, err := s.catalog.FindProduct(ctx, p.ID)
	if err != nil {
		return models.Product{}, notFound(err)
	}
	return saved, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	ok, err := s.catalog.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	s.catalog.ForgetCategories()
	logger.WithCtx(ctx).Info("admin: product deleted", "product_id", id)
	return nil
}

// UploadProductImage stores r under a generated name keeping filename's
// extension and returns its public URL.
func (s *AdminService) UploadProductImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !imageExtensions[ext] {
		return "", fieldError("image", "The image must be a png, jpg, jpeg, gif or webp file.")
	}

	name, err := s.imageName(ext)
	if err != nil {
		return "", err
	}
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}

	if err := s.disk.PutStream(ctx, key, r, mime.TypeByExtension(ext)); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	url := s.disk.URL(key)
	logger.WithCtx(ctx).Info("admin: product image uploaded", "key", key)
	return url, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// imageName is <unix millis>-<6 random base36 chars><ext>.
func (s *AdminService) imageName(ext string) (string, error) {
	suffix := make([]byte, 6)
	radix := big.NewInt(int64(len(base36)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", fmt.Errorf("image name: %w", err)
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext), nil
}

// SetWalletBalance overwrites a user's balance. It is the manual tool for
// settling deposits and withdrawals.
func (s *AdminService) SetWalletBalance(ctx context.Context, userID string, balance decimal.Decimal) (models.Profile, error) {
	if balance.IsNegative() {
		return models.Profile{}, fieldError("balance", "The balance must be at least 0.")
	}
	if _, err := s.profiles.Find(ctx, userID); err != nil {
		return models.Profile{}, notFound(err)
	}

	if err := s.profiles.SetBalance(ctx, userID, balance.Round(2)); err != nil {
		return models.Profile{}, fmt.Errorf("set balance: %w", err)
	}
	p, err := s.profiles.Find(ctx, userID)
	if err != nil {
		return models.Profile{}, notFound(err)
	}

	logger.WithCtx(ctx).Info("admin: wallet balance set", "user_id", userID, "balance", p.WalletBalance.StringFixed(2))
	return p, nil
}
