// Package query is the read side of the ledger: single-transaction lookup
// and wallet-scoped listings over the persisted records.
package query

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
)

// MaxRecentResults caps the recent-activity extracts per operation kind.
const MaxRecentResults = 150

var ErrTransactionNotFound = errors.New("transaction not found")

// Page is one page of a wallet's transaction listing.
type Page struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

type Service interface {
	GetTransaction(ctx context.Context, id uint) (*models.Transaction, error)
	ListByWallet(ctx context.Context, walletID uint, status *models.TransactionStatus, limit, offset int) (*Page, error)
	ListRecentByOperation(ctx context.Context, walletID uint, op models.OperationType, limit int) ([]models.Transaction, error)
}

type service struct {
	repo  repositories.TransactionRepository
	cache *cache.CacheService
}

func NewService(repo repositories.TransactionRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{
		repo:  repo,
		cache: cacheSvc,
	}
}

func (s *service) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	if s.cache != nil {
		if tx, found, err := s.cache.GetTransaction(ctx, id); err == nil && found {
			return tx, nil
		}
	}

	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheTransaction(ctx, tx); err != nil {
			zap.L().Warn("failed to cache transaction", zap.Uint("transaction_id", id), zap.Error(err))
		}
	}
	return tx, nil
}

func (s *service) ListByWallet(ctx context.Context, walletID uint, status *models.TransactionStatus, limit, offset int) (*Page, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	txs, total, err := s.repo.ListByWalletAndStatus(ctx, walletID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &Page{
		Transactions: txs,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *service) ListRecentByOperation(ctx context.Context, walletID uint, op models.OperationType, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > MaxRecentResults {
		limit = MaxRecentResults
	}

	txs, err := s.repo.ListRecentByOperation(ctx, walletID, op, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return txs, nil
}
