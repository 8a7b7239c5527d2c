package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/services/sequence"
)

type service struct {
	repo  repositories.LedgerRepository
	cache *cache.CacheService
	seq   sequence.Allocator
}

// NewService creates a new wallet service
func NewService(repo repositories.LedgerRepository, cacheSvc *cache.CacheService, seq sequence.Allocator) Service {
	if repo == nil {
		panic("repo is required")
	}
	if seq == nil {
		panic("sequence allocator is required")
	}

	return &service{
		repo:  repo,
		cache: cacheSvc,
		seq:   seq,
	}
}

func (s *service) CreateWallet(ctx context.Context, customerID uint) (*models.Wallet, error) {
	if _, err := s.repo.GetCustomer(customerID); err != nil {
		if errors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	id, err := s.seq.Next(models.SeqWallet)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate wallet id: %w", err)
	}

	w := &models.Wallet{
		ID:         uint(id),
		CustomerID: customerID,
		Status:     models.StatusPending,
	}
	if err := s.repo.CreateWallet(w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	zap.L().Info("wallet created",
		zap.Uint("wallet_id", w.ID),
		zap.Uint("customer_id", customerID))
	return w, nil
}

func (s *service) GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if w, found, err := s.cache.GetWallet(ctx, walletID); err == nil && found {
			return w, nil
		}
	}

	w, err := s.repo.GetWallet(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, w); err != nil {
			zap.L().Warn("failed to cache wallet", zap.Uint("wallet_id", walletID), zap.Error(err))
		}
	}
	return w, nil
}

func (s *service) UpdateStatus(ctx context.Context, walletID uint, status models.Status) error {
	w, err := s.repo.GetWallet(walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return ErrWalletNotFound
		}
		return fmt.Errorf("failed to get wallet: %w", err)
	}

	w.Status = status
	w.UpdatedAt = time.Now()
	if err := s.repo.UpdateWallet(w); err != nil {
		return fmt.Errorf("failed to update wallet status: %w", err)
	}

	s.invalidate(ctx, walletID)
	zap.L().Info("wallet status updated",
		zap.Uint("wallet_id", walletID),
		zap.String("status", status.String()))
	return nil
}

// AdjustBalance applies the balances already fixed on the posted transaction
// to the wallet row. The amounts are never recomputed here; the transaction
// record is the source of truth, which keeps the live row and the audit
// trail from drifting apart.
func (s *service) AdjustBalance(repo repositories.LedgerRepository, wallet *models.Wallet, posted *models.Transaction) error {
	if posted == nil {
		return ErrNilTransaction
	}
	if posted.Status != models.TransactionSuccess {
		return ErrNotPosted
	}

	wallet.PreviousBalance = posted.PreviousBalance
	wallet.CurrentBalance = posted.CurrentBalance
	wallet.UpdatedAt = time.Now()

	if err := repo.UpdateWallet(wallet); err != nil {
		return fmt.Errorf("failed to adjust balance for wallet %d: %w", wallet.ID, err)
	}
	return nil
}

// InvalidateCache drops the cached copy of a wallet. The posting service
// calls this after its transaction commits.
func (s *service) invalidate(ctx context.Context, walletID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, walletID); err != nil {
		zap.L().Warn("failed to invalidate wallet cache", zap.Uint("wallet_id", walletID), zap.Error(err))
	}
}
