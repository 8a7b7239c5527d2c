package posting

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/services/rules"
	"aurum/internal/services/wallet"
)

// fakeLedger is an in-memory LedgerRepository. ExecuteInTransaction runs the
// callback directly; tests that need rollback semantics assert on the error
// paths that never reach a write.
type fakeLedger struct {
	mu           sync.Mutex
	wallets      map[uint]*models.Wallet
	customers    map[uint]*models.Customer
	transactions map[uint]*models.Transaction
	movements    map[uint]*models.MovementTransaction
	senders      map[uint]*models.DepositSender
	sequences    map[string]uint64
}

func newFakeLedger() *fakeLedger {
	seqs := make(map[string]uint64)
	for _, name := range models.SequenceNames {
		seqs[name] = 0
	}
	return &fakeLedger{
		wallets:      make(map[uint]*models.Wallet),
		customers:    make(map[uint]*models.Customer),
		transactions: make(map[uint]*models.Transaction),
		movements:    make(map[uint]*models.MovementTransaction),
		senders:      make(map[uint]*models.DepositSender),
		sequences:    seqs,
	}
}

func (f *fakeLedger) addActiveWallet(id uint, balance string) *models.Wallet {
	customer := &models.Customer{ID: id, FullName: "Customer", Status: models.StatusActive}
	w := &models.Wallet{
		ID:             id,
		CustomerID:     id,
		Customer:       customer,
		Status:         models.StatusActive,
		CurrentBalance: decimal.RequireFromString(balance),
	}
	f.customers[id] = customer
	f.wallets[id] = w
	return w
}

func (f *fakeLedger) CreateWallet(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wallets[w.ID] = w
	return nil
}

func (f *fakeLedger) GetWallet(id uint) (*models.Wallet, error) {
	return f.GetWalletForUpdate(id)
}

func (f *fakeLedger) GetWalletForUpdate(id uint) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	copied := *w
	if w.Customer != nil {
		customer := *w.Customer
		copied.Customer = &customer
	}
	return &copied, nil
}

func (f *fakeLedger) UpdateWallet(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *w
	f.wallets[w.ID] = &copied
	return nil
}

func (f *fakeLedger) CreateCustomer(c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[c.ID] = c
	return nil
}

func (f *fakeLedger) GetCustomer(id uint) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, repositories.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeLedger) CreateTransaction(tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions[tx.ID] = tx
	return nil
}

func (f *fakeLedger) UpdateTransactionLinks(tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.transactions[tx.ID]
	if !ok {
		return repositories.ErrTransactionNotFound
	}
	stored.MovementID = tx.MovementID
	stored.DepositSenderID = tx.DepositSenderID
	return nil
}

func (f *fakeLedger) CreateMovement(m *models.MovementTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements[m.ID] = m
	return nil
}

func (f *fakeLedger) CreateDepositSender(s *models.DepositSender) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.senders[s.ID] = s
	return nil
}

func (f *fakeLedger) NextSequence(name string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sequences[name]; !ok {
		return 0, repositories.ErrSequenceNotFound
	}
	f.sequences[name]++
	return f.sequences[name], nil
}

func (f *fakeLedger) CreateSequence(seq *models.Sequence) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sequences[seq.Name] = seq.Value
	return nil
}

func (f *fakeLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	return fn(f)
}

func newPostingService(ledger *fakeLedger) Service {
	wallets := wallet.NewService(ledger, nil, allocatorFunc(ledger.NextSequence))
	return NewService(ledger, rules.NewEngine(), wallets, nil)
}

type allocatorFunc func(string) (uint64, error)

func (f allocatorFunc) Next(name string) (uint64, error) { return f(name) }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeposit_Success(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "100.00")
	svc := newPostingService(ledger)

	tx, err := svc.Deposit(context.Background(), DepositRequest{WalletID: 1, Amount: amount("60.00")})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionSuccess, tx.Status)
	assert.Equal(t, models.OperationDeposit, tx.OperationType)
	assert.True(t, tx.PreviousBalance.Equal(amount("100.00")))
	assert.True(t, tx.CurrentBalance.Equal(amount("160.00")))

	w := ledger.wallets[1]
	assert.True(t, w.CurrentBalance.Equal(amount("160.00")))
	assert.True(t, w.PreviousBalance.Equal(amount("100.00")))

	require.Len(t, ledger.movements, 1)
	require.NotNil(t, tx.MovementID)
	movement := ledger.movements[*tx.MovementID]
	assert.Equal(t, tx.ID, movement.TransactionID)
	assert.Nil(t, movement.TransactionReferenceID)
	assert.Nil(t, movement.WalletReferenceID)
}

func TestDeposit_BelowMinimumPersistsAuditRecord(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "100.00")
	svc := newPostingService(ledger)

	_, err := svc.Deposit(context.Background(), DepositRequest{WalletID: 1, Amount: amount("49.99")})

	violation, ok := AsBusinessRuleViolation(err)
	require.True(t, ok)
	assert.Equal(t, models.TransactionAmountDepositInsufficient, violation.Outcome)

	// The failed attempt is persisted with its failure status.
	require.Len(t, ledger.transactions, 1)
	stored := ledger.transactions[violation.Transaction.ID]
	assert.Equal(t, models.TransactionAmountDepositInsufficient, stored.Status)

	// No balance mutation, no movement.
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("100.00")))
	assert.Empty(t, ledger.movements)
}

func TestDeposit_WalletNotFoundWritesNothing(t *testing.T) {
	ledger := newFakeLedger()
	svc := newPostingService(ledger)

	_, err := svc.Deposit(context.Background(), DepositRequest{WalletID: 42, Amount: amount("60.00")})
	assert.ErrorIs(t, err, ErrWalletNotFound)
	assert.Empty(t, ledger.transactions)
}

func TestDeposit_SenderMetadata(t *testing.T) {
	tests := []struct {
		name       string
		senderName string
		senderCpf  string
		wantSender bool
	}{
		{"both fields long enough", "Maria Silva", "12345678901", true},
		{"cpf too short", "Maria Silva", "12345", false},
		{"name too short", "Maria", "12345678901", false},
		{"no metadata", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			ledger.addActiveWallet(1, "100.00")
			svc := newPostingService(ledger)

			tx, err := svc.Deposit(context.Background(), DepositRequest{
				WalletID:   1,
				Amount:     amount("60.00"),
				SenderName: tt.senderName,
				SenderCpf:  tt.senderCpf,
				TerminalID: "T-001",
			})
			require.NoError(t, err)

			if tt.wantSender {
				require.NotNil(t, tx.DepositSenderID)
				sender := ledger.senders[*tx.DepositSenderID]
				assert.Equal(t, tt.senderCpf, sender.Cpf)
				assert.Equal(t, tt.senderName, sender.FullName)
				assert.Equal(t, "T-001", sender.TerminalID)
				assert.True(t, sender.Amount.Equal(amount("60.00")))
			} else {
				assert.Nil(t, tx.DepositSenderID)
				assert.Empty(t, ledger.senders)
			}
		})
	}
}

func TestWithdraw_Success(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "160.00")
	svc := newPostingService(ledger)

	tx, err := svc.Withdraw(context.Background(), WithdrawRequest{WalletID: 1, Amount: amount("60.00")})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionSuccess, tx.Status)
	assert.True(t, tx.CurrentBalance.Equal(amount("100.00")))
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("100.00")))
	assert.Len(t, ledger.movements, 1)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "160.00")
	svc := newPostingService(ledger)

	_, err := svc.Withdraw(context.Background(), WithdrawRequest{WalletID: 1, Amount: amount("200.00")})

	violation, ok := AsBusinessRuleViolation(err)
	require.True(t, ok)
	assert.Equal(t, models.TransactionInsufficientBalance, violation.Outcome)

	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("160.00")))
	require.Len(t, ledger.transactions, 1)
	assert.Empty(t, ledger.movements)
}

func TestTransfer_Success(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "160.00")
	ledger.addActiveWallet(2, "0.00")
	svc := newPostingService(ledger)

	sendTx, err := svc.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       amount("80.00"),
	})
	require.NoError(t, err)

	// Conservation: debit and credit of the same amount.
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("80.00")))
	assert.True(t, ledger.wallets[2].CurrentBalance.Equal(amount("80.00")))

	require.Len(t, ledger.transactions, 2)
	require.Len(t, ledger.movements, 2)

	assert.Equal(t, models.OperationTransferSend, sendTx.OperationType)
	assert.Equal(t, models.TransactionSuccess, sendTx.Status)

	var receiveTx *models.Transaction
	for _, tx := range ledger.transactions {
		if tx.OperationType == models.OperationTransferReceived {
			receiveTx = tx
		}
	}
	require.NotNil(t, receiveTx)
	assert.Equal(t, models.TransactionSuccess, receiveTx.Status)
	assert.True(t, receiveTx.PreviousBalance.Equal(amount("0.00")))
	assert.True(t, receiveTx.CurrentBalance.Equal(amount("80.00")))

	// Movements cross-reference each other's leg.
	require.NotNil(t, sendTx.MovementID)
	sendMovement := ledger.movements[*sendTx.MovementID]
	require.NotNil(t, sendMovement.TransactionReferenceID)
	assert.Equal(t, receiveTx.ID, *sendMovement.TransactionReferenceID)
	assert.Equal(t, receiveTx.WalletID, *sendMovement.WalletReferenceID)

	require.NotNil(t, receiveTx.MovementID)
	receiveMovement := ledger.movements[*receiveTx.MovementID]
	require.NotNil(t, receiveMovement.TransactionReferenceID)
	assert.Equal(t, sendTx.ID, *receiveMovement.TransactionReferenceID)
	assert.Equal(t, sendTx.WalletID, *receiveMovement.WalletReferenceID)
}

func TestTransfer_SameWallet(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "160.00")
	svc := newPostingService(ledger)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   1,
		Amount:       amount("999999.00"),
	})

	violation, ok := AsBusinessRuleViolation(err)
	require.True(t, ok)
	assert.Equal(t, models.TransactionSameWallet, violation.Outcome)
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("160.00")))
	require.Len(t, ledger.transactions, 1)
}

func TestTransfer_BelowMinimum(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "160.00")
	ledger.addActiveWallet(2, "0.00")
	svc := newPostingService(ledger)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       amount("49.99"),
	})

	violation, ok := AsBusinessRuleViolation(err)
	require.True(t, ok)
	assert.Equal(t, models.TransactionAmountTransferInvalid, violation.Outcome)
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("160.00")))
	assert.True(t, ledger.wallets[2].CurrentBalance.Equal(amount("0.00")))
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "50.00")
	ledger.addActiveWallet(2, "0.00")
	svc := newPostingService(ledger)

	_, err := svc.Transfer(context.Background(), TransferRequest{
		FromWalletID: 1,
		ToWalletID:   2,
		Amount:       amount("80.00"),
	})

	violation, ok := AsBusinessRuleViolation(err)
	require.True(t, ok)
	assert.Equal(t, models.TransactionInsufficientBalance, violation.Outcome)
	require.Len(t, ledger.transactions, 1)
	assert.Empty(t, ledger.movements)
}

// Balance consistency: after a mixed sequence of postings the wallet's
// balance equals the currentBalance of its most recent SUCCESS transaction.
func TestBalanceConsistencyAcrossPostings(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "100.00")
	ledger.addActiveWallet(2, "0.00")
	svc := newPostingService(ledger)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, DepositRequest{WalletID: 1, Amount: amount("60.00")})
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, WithdrawRequest{WalletID: 1, Amount: amount("200.00")})
	require.Error(t, err)

	sendTx, err := svc.Transfer(ctx, TransferRequest{FromWalletID: 1, ToWalletID: 2, Amount: amount("80.00")})
	require.NoError(t, err)

	var lastSuccess *models.Transaction
	for _, tx := range ledger.transactions {
		if tx.WalletID != 1 || tx.Status != models.TransactionSuccess {
			continue
		}
		if lastSuccess == nil || tx.ID > lastSuccess.ID {
			lastSuccess = tx
		}
	}
	require.NotNil(t, lastSuccess)
	assert.Equal(t, sendTx.ID, lastSuccess.ID)
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(lastSuccess.CurrentBalance))
	assert.True(t, ledger.wallets[1].CurrentBalance.Equal(amount("80.00")))
}

// Transaction ids are allocated from one shared sequence across all kinds.
func TestTransactionIDsShareOneSequence(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addActiveWallet(1, "1000.00")
	ledger.addActiveWallet(2, "0.00")
	svc := newPostingService(ledger)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, DepositRequest{WalletID: 1, Amount: amount("60.00")})
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, WithdrawRequest{WalletID: 1, Amount: amount("60.00")})
	require.NoError(t, err)
	_, err = svc.Transfer(ctx, TransferRequest{FromWalletID: 1, ToWalletID: 2, Amount: amount("80.00")})
	require.NoError(t, err)

	seen := make(map[uint]bool)
	for id := range ledger.transactions {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, 4)
	for id := uint(1); id <= 4; id++ {
		assert.Contains(t, ledger.transactions, id)
	}
}
