package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurum/internal/models"
	"aurum/internal/repositories"
)

type stubRepo struct {
	repositories.LedgerRepository
	customers map[uint]*models.Customer
	wallets   map[uint]*models.Wallet
	updated   *models.Wallet
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		customers: make(map[uint]*models.Customer),
		wallets:   make(map[uint]*models.Wallet),
	}
}

func (r *stubRepo) GetCustomer(id uint) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repositories.ErrCustomerNotFound
	}
	return c, nil
}

func (r *stubRepo) GetWallet(id uint) (*models.Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return w, nil
}

func (r *stubRepo) CreateWallet(w *models.Wallet) error {
	r.wallets[w.ID] = w
	return nil
}

func (r *stubRepo) UpdateWallet(w *models.Wallet) error {
	r.wallets[w.ID] = w
	r.updated = w
	return nil
}

type fixedAllocator uint64

func (a fixedAllocator) Next(name string) (uint64, error) { return uint64(a), nil }

func TestCreateWallet(t *testing.T) {
	repo := newStubRepo()
	repo.customers[7] = &models.Customer{ID: 7, Status: models.StatusActive}
	svc := NewService(repo, nil, fixedAllocator(12))

	w, err := svc.CreateWallet(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint(12), w.ID)
	assert.Equal(t, uint(7), w.CustomerID)
	assert.Equal(t, models.StatusPending, w.Status)
	assert.True(t, w.CurrentBalance.IsZero())
	assert.Contains(t, repo.wallets, uint(12))
}

func TestCreateWallet_UnknownCustomer(t *testing.T) {
	svc := NewService(newStubRepo(), nil, fixedAllocator(1))

	_, err := svc.CreateWallet(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetWallet_NotFound(t *testing.T) {
	svc := NewService(newStubRepo(), nil, fixedAllocator(1))

	_, err := svc.GetWallet(context.Background(), 404)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := newStubRepo()
	repo.wallets[3] = &models.Wallet{ID: 3, Status: models.StatusPending}
	svc := NewService(repo, nil, fixedAllocator(1))

	err := svc.UpdateStatus(context.Background(), 3, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, repo.wallets[3].Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newStubRepo(), nil, fixedAllocator(1))

	err := svc.UpdateStatus(context.Background(), 3, models.StatusActive)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestAdjustBalance_CopiesPostedBalances(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, nil, fixedAllocator(1))

	w := &models.Wallet{ID: 5, CurrentBalance: decimal.RequireFromString("100.00")}
	posted := &models.Transaction{
		ID:              1,
		WalletID:        5,
		Status:          models.TransactionSuccess,
		PreviousBalance: decimal.RequireFromString("100.00"),
		CurrentBalance:  decimal.RequireFromString("160.00"),
	}

	require.NoError(t, svc.AdjustBalance(repo, w, posted))
	assert.True(t, w.PreviousBalance.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, w.CurrentBalance.Equal(decimal.RequireFromString("160.00")))
	require.NotNil(t, repo.updated)
	assert.Equal(t, uint(5), repo.updated.ID)
}

func TestAdjustBalance_Guards(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, nil, fixedAllocator(1))
	w := &models.Wallet{ID: 5}

	err := svc.AdjustBalance(repo, w, nil)
	assert.ErrorIs(t, err, ErrNilTransaction)

	rejected := &models.Transaction{ID: 1, WalletID: 5, Status: models.TransactionInsufficientBalance}
	err = svc.AdjustBalance(repo, w, rejected)
	assert.ErrorIs(t, err, ErrNotPosted)

	// Nothing was written on either failure.
	assert.Nil(t, repo.updated)
}
