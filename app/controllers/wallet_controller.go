package controllers

import (
	"time"

	"github.com/shashiranjanraj/lodge/app/services"
	"github.com/shashiranjanraj/lodge/pkg/ctx"
	"github.com/shashiranjanraj/lodge/pkg/sse"
)

type WalletController struct {
	wallet    *services.WalletService
	watcher   *services.BalanceWatcher
	keepalive time.Duration
}

func NewWalletController(wallet *services.WalletService, watcher *services.BalanceWatcher) *WalletController {
	return &WalletController{wallet: wallet, watcher: watcher, keepalive: 25 * time.Second}
}

// Balance GET /api/wallet/balance
func (wc *WalletController) Balance(c *ctx.Context) {
	bal, err := wc.wallet.GetBalance(c.Context(), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"balance": bal})
}

// Stream GET /api/wallet/balance/stream pushes a "balance" event whenever
// the watcher polls, until the client disconnects.
func (wc *WalletController) Stream(c *ctx.Context) {
	stream, err := sse.New(c.W, c.R)
	if err != nil {
		fail(c, err)
		return
	}

	readings := wc.watcher.Watch(c.Context(), c.UserID())
	ping := time.NewTicker(wc.keepalive)
	defer ping.Stop()

	for {
		select {
		case r, ok := <-readings:
			if !ok {
				return
			}
			if err := stream.Send("balance", r); err != nil {
				return
			}
		case <-ping.C:
			if err := stream.Comment("ping"); err != nil {
				return
			}
		case <-stream.Done():
			return
		}
	}
}

// Transactions GET /api/wallet/transactions
func (wc *WalletController) Transactions(c *ctx.Context) {
	txs, err := wc.wallet.ListTransactions(c.Context(), c.UserID())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(txs)
}

// Transaction GET /api/wallet/transactions/{id}
func (wc *WalletController) Transaction(c *ctx.Context) {
	tx, err := wc.wallet.GetTransaction(c.Context(), c.UserID(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(tx)
}

// Addresses GET /api/wallet/addresses
func (wc *WalletController) Addresses(c *ctx.Context) {
	c.Success(wc.wallet.DepositAddresses())
}

// Deposit POST /api/wallet/deposits
func (wc *WalletController) Deposit(c *ctx.Context) {
	var in services.DepositInput
	if !c.DecodeJSON(&in) {
		return
	}
	tx, err := wc.wallet.CreateDeposit(c.Context(), c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}
	addr, _ := wc.wallet.DepositAddress(in.Network)
	c.Created(map[string]interface{}{"transaction": tx, "address": addr})
}

// Withdraw POST /api/wallet/withdrawals
func (wc *WalletController) Withdraw(c *ctx.Context) {
	var in services.WithdrawalInput
	if !c.DecodeJSON(&in) {
		return
	}
	tx, err := wc.wallet.CreateWithdrawal(c.Context(), c.UserID(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(tx)
}
