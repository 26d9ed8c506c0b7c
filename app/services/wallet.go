package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/app/models"
	"github.com/shashiranjanraj/lodge/app/repositories"
	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/metrics"
)

// Networks accepted for deposits and withdrawals.
var Networks = []string{"btc", "eth", "sol", "usdt"}

// MinimumDeposit is the smallest deposit request accepted, in dollars.
var MinimumDeposit = decimal.NewFromInt(10)

type DepositInput struct {
	Amount  decimal.Decimal `json:"amount"  validate:"gt=0"`
	Network string          `json:"network" validate:"required,oneof=btc eth sol usdt"`
	TxHash  string          `json:"tx_hash" validate:"max=255"`
}

type WithdrawalInput struct {
	Amount  decimal.Decimal `json:"amount"  validate:"gt=0"`
	Address string          `json:"address" validate:"notblank,max=255"`
	Network string          `json:"network" validate:"required,oneof=btc eth sol usdt"`
}

// WalletService records deposit and withdrawal requests. Requests stay
// pending until settled outside the app; only checkout and the admin
// balance set move the balance.
type WalletService struct {
	profiles *repositories.ProfileRepository
	txs      *repositories.TransactionRepository
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{
		profiles: repositories.NewProfileRepository(db),
		txs:      repositories.NewTransactionRepository(db),
	}
}

// GetBalance returns the spendable balance, zero when there is no profile.
func (s *WalletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	p, err := s.profiles.Find(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("load balance: %w", err)
	}
	return p.WalletBalance, nil
}

// ListTransactions returns the user's transactions, newest first.
func (s *WalletService) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	txs, err := s.txs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// GetTransaction returns ErrNotFound for a missing transaction and for one
// owned by another user.
func (s *WalletService) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	t, err := s.txs.FindForUser(ctx, userID, id)
	if err != nil {
		return models.Transaction{}, notFound(err)
	}
	return t, nil
}

// CreateDeposit records a pending deposit request.
func (s *WalletService) CreateDeposit(ctx context.Context, userID string, in DepositInput) (models.Transaction, error) {
	in.Network = strings.ToLower(strings.TrimSpace(in.Network))
	if err := checkInput(in); err != nil {
		return models.Transaction{}, err
	}
	if in.Amount.LessThan(MinimumDeposit) {
		return models.Transaction{}, ErrBelowMinimumDeposit
	}

	t := models.Transaction{
		UserID:    userID,
		Type:      models.TxDeposit,
		Amount:    in.Amount.Round(2),
		Status:    models.TxPending,
		Reference: in.Network + " Deposit",
		Network:   &in.Network,
	}
	if h := strings.TrimSpace(in.TxHash); h != "" {
		t.TxHash = &h
	}
	if err := s.txs.Create(ctx, &t); err != nil {
		return models.Transaction{}, fmt.Errorf("record deposit: %w", err)
	}

	metrics.WalletRequests.WithLabelValues(models.TxDeposit).Inc()
	logger.WithCtx(ctx).Info("wallet: deposit requested",
		"user_id", userID, "amount", t.Amount.StringFixed(2), "network", in.Network)
	return t, nil
}

// CreateWithdrawal records a pending withdrawal when the current balance
// covers it. The balance itself is not reserved.
func (s *WalletService) CreateWithdrawal(ctx context.Context, userID string, in WithdrawalInput) (models.Transaction, error) {
	in.Network = strings.ToLower(strings.TrimSpace(in.Network))
	in.Address = strings.TrimSpace(in.Address)
	if err := checkInput(in); err != nil {
		return models.Transaction{}, err
	}

	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	if in.Amount.GreaterThan(balance) {
		return models.Transaction{}, ErrInsufficientBalance
	}

	t := models.Transaction{
		UserID:    userID,
		Type:      models.TxWithdrawal,
		Amount:    in.Amount.Round(2),
		Status:    models.TxPending,
		Reference: "Withdrawal to " + maskAddress(in.Address),
		Network:   &in.Network,
		Address:   &in.Address,
	}
	if err := s.txs.Create(ctx, &t); err != nil {
		return models.Transaction{}, fmt.Errorf("record withdrawal: %w", err)
	}

	metrics.WalletRequests.WithLabelValues(models.TxWithdrawal).Inc()
	logger.WithCtx(ctx).Info("wallet: withdrawal requested",
		"user_id", userID, "amount", t.Amount.StringFixed(2), "network", in.Network)
	return t, nil
}

// maskAddress keeps the first six and last four characters.
func maskAddress(addr string) string {
	r := []rune(addr)
	head := r
	if len(head) > 6 {
		head = r[:6]
	}
	tail := r
	if len(tail) > 4 {
		tail = r[len(r)-4:]
	}
	return string(head) + "..." + string(tail)
}

// DepositAddress returns the receiving address for network.
func (s *WalletService) DepositAddress(network string) (string, error) {
	network = strings.ToLower(strings.TrimSpace(network))
	for _, n := range Networks {
		if n == network {
			if addr := config.DepositAddress(n); addr != "" {
				return addr, nil
			}
			break
		}
	}
	return "", ErrNotFound
}

// DepositAddresses maps every configured network to its address.
func (s *WalletService) DepositAddresses() map[string]string {
	out := make(map[string]string, len(Networks))
	for _, n := range Networks {
		if addr := config.DepositAddress(n); addr != "" {
			out[n] = addr
		}
	}
	return out
}
