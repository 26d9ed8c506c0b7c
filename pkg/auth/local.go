package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/pkg/logger"
)

// User is an account held by the local gateway.
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;default:user"`
	VerifiedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u User) identity() Identity {
	return Identity{
		UserID:        u.ID,
		Email:         u.Email,
		Role:          normalizeRole(u.Role),
		EmailVerified: u.VerifiedAt != nil,
	}
}

// LocalOptions configures LocalGateway.
type LocalOptions struct {
	Secret      []byte
	TokenTTL    time.Duration
	AdminEmails []string
}

// LocalGateway is a self-contained gateway for development and tests.
// Accounts are confirmed at sign-up; reset and verification mails are
// written to the log instead of being sent.
type LocalGateway struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	admins map[string]bool
}

func NewLocalGateway(db *gorm.DB, opts LocalOptions) (*LocalGateway, error) {
	if db == nil {
		return nil, errors.New("auth: local gateway needs a database")
	}
	if len(opts.Secret) == 0 {
		return nil, errEmptySecret
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}

	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[normalizeEmail(e)] = true
	}
	return &LocalGateway{db: db, secret: opts.Secret, ttl: opts.TokenTTL, admins: admins}, nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (g *LocalGateway) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	var count int64
	if err := g.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("auth: lookup %s: %w", email, err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	now := time.Now()
	u := User{Email: email, PasswordHash: hash, Role: RoleUser, VerifiedAt: &now}
	if g.admins[email] {
		u.Role = RoleAdmin
	}
	if err := g.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("auth: create user: %w", err)
	}
	return g.session(u)
}

func (g *LocalGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := g.byEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if u.VerifiedAt == nil {
		return nil, ErrEmailNotVerified
	}
	return g.session(u)
}

// ResetPassword never reveals whether the address exists.
func (g *LocalGateway) ResetPassword(ctx context.Context, email string) error {
	u, err := g.byEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := GenerateToken(g.secret, u.identity(), 15*time.Minute)
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("auth: password reset requested", "user_id", u.ID, "token", token)
	return nil
}

func (g *LocalGateway) UpdatePassword(ctx context.Context, token, password string) error {
	id, err := g.Verify(ctx, token)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return g.db.WithContext(ctx).Model(&User{}).Where("id = ?", id.UserID).
		Update("password_hash", hash).Error
}

func (g *LocalGateway) UpdateEmail(ctx context.Context, token, email string) error {
	id, err := g.Verify(ctx, token)
	if err != nil {
		return err
	}
	email = normalizeEmail(email)

	var count int64
	if err := g.db.WithContext(ctx).Model(&User{}).
		Where("email = ? AND id <> ?", email, id.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return g.db.WithContext(ctx).Model(&User{}).Where("id = ?", id.UserID).
		Update("email", email).Error
}

func (g *LocalGateway) ResendVerification(ctx context.Context, email string) error {
	logger.WithCtx(ctx).Info("auth: verification resend requested", "email", normalizeEmail(email))
	return nil
}

// Verify checks the token signature and that the account still exists, so
// role changes take effect on the next request.
func (g *LocalGateway) Verify(ctx context.Context, token string) (Identity, error) {
	claimed, err := ParseToken(g.secret, token)
	if err != nil {
		return Identity{}, err
	}

	var u User
	if err := g.db.WithContext(ctx).Where("id = ?", claimed.UserID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, err
	}
	return u.identity(), nil
}

func (g *LocalGateway) byEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := g.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	return u, err
}

func (g *LocalGateway) session(u User) (*Session, error) {
	token, err := GenerateToken(g.secret, u.identity(), g.ttl)
	if err != nil {
		return nil, fmt.Errorf("auth: sign token: %w", err)
	}
	return &Session{AccessToken: token, ExpiresIn: int(g.ttl.Seconds()), User: u.identity()}, nil
}
