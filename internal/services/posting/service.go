// Package posting implements the transaction posting engine. A posting
// locks the wallet rows it touches, evaluates the rule engine, persists the
// transaction record, and only on a SUCCESS outcome adjusts balances and
// writes movement records. The whole sequence runs in one database
// transaction; the single deliberate exception is that a record whose
// validation failed is still committed, as an audit trail of the attempt.
package posting

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/services/rules"
	"aurum/internal/services/wallet"
)

type service struct {
	repo    repositories.LedgerRepository
	rules   rules.Engine
	wallets wallet.Service
	cache   *cache.CacheService
}

// NewService creates the posting engine. The cache service is optional;
// when present, wallet cache entries are invalidated after each commit.
func NewService(repo repositories.LedgerRepository, ruleEngine rules.Engine, wallets wallet.Service, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("repo is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}

	return &service{
		repo:    repo,
		rules:   ruleEngine,
		wallets: wallets,
		cache:   cacheSvc,
	}
}

func (s *service) Deposit(ctx context.Context, req DepositRequest) (*models.Transaction, error) {
	var (
		posted    *models.Transaction
		violation *BusinessRuleViolation
	)

	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		w, err := r.GetWalletForUpdate(req.WalletID)
		if err != nil {
			return err
		}

		outcome := s.rules.CheckDeposit(w, req.Amount)

		id, err := r.NextSequence(models.SeqTransaction)
		if err != nil {
			return err
		}
		tx := models.NewDeposit(uint(id), w, req.Amount, outcome)
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		posted = tx

		if outcome != models.TransactionSuccess {
			// Commit the failed attempt as an audit record.
			violation = &BusinessRuleViolation{Outcome: outcome, Transaction: tx}
			return nil
		}

		if err := s.wallets.AdjustBalance(r, w, tx); err != nil {
			return err
		}

		movementID, err := r.NextSequence(models.SeqMovement)
		if err != nil {
			return err
		}
		movement := models.NewMovement(uint(movementID), tx)
		if err := r.CreateMovement(movement); err != nil {
			return err
		}
		tx.MovementID = &movement.ID
		tx.Movement = movement

		if hasSenderMetadata(req) {
			senderID, err := r.NextSequence(models.SeqDepositSender)
			if err != nil {
				return err
			}
			sender := &models.DepositSender{
				ID:         uint(senderID),
				Cpf:        req.SenderCpf,
				FullName:   req.SenderName,
				TerminalID: req.TerminalID,
				Amount:     req.Amount,
			}
			if err := r.CreateDepositSender(sender); err != nil {
				return err
			}
			tx.DepositSenderID = &sender.ID
			tx.DepositSender = sender
		}

		return r.UpdateTransactionLinks(tx)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	if violation != nil {
		s.logRejection("deposit", req.WalletID, violation.Outcome)
		return nil, violation
	}

	s.afterCommit(ctx, posted, req.WalletID)
	return posted, nil
}

func (s *service) Withdraw(ctx context.Context, req WithdrawRequest) (*models.Transaction, error) {
	var (
		posted    *models.Transaction
		violation *BusinessRuleViolation
	)

	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		w, err := r.GetWalletForUpdate(req.WalletID)
		if err != nil {
			return err
		}

		outcome := s.rules.CheckWithdraw(w, req.Amount)

		id, err := r.NextSequence(models.SeqTransaction)
		if err != nil {
			return err
		}
		tx := models.NewWithdraw(uint(id), w, req.Amount, outcome)
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		posted = tx

		if outcome != models.TransactionSuccess {
			violation = &BusinessRuleViolation{Outcome: outcome, Transaction: tx}
			return nil
		}

		if err := s.wallets.AdjustBalance(r, w, tx); err != nil {
			return err
		}

		movementID, err := r.NextSequence(models.SeqMovement)
		if err != nil {
			return err
		}
		movement := models.NewMovement(uint(movementID), tx)
		if err := r.CreateMovement(movement); err != nil {
			return err
		}
		tx.MovementID = &movement.ID
		tx.Movement = movement

		return r.UpdateTransactionLinks(tx)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	if violation != nil {
		s.logRejection("withdraw", req.WalletID, violation.Outcome)
		return nil, violation
	}

	s.afterCommit(ctx, posted, req.WalletID)
	return posted, nil
}

// Transfer posts both legs of a transfer as one atomic unit: two
// transaction records and two cross-linked movement records, with both
// wallet rows locked in ascending id order to keep concurrent transfers
// deadlock-free.
func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	var (
		posted    *models.Transaction
		violation *BusinessRuleViolation
	)

	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		from, to, err := lockPair(r, req.FromWalletID, req.ToWalletID)
		if err != nil {
			return err
		}

		outcome := s.rules.CheckTransfer(from, to, req.Amount)

		sendID, err := r.NextSequence(models.SeqTransaction)
		if err != nil {
			return err
		}
		sendTx := models.NewTransferSend(uint(sendID), from, req.Amount, outcome)
		if err := r.CreateTransaction(sendTx); err != nil {
			return err
		}
		posted = sendTx

		if outcome != models.TransactionSuccess {
			violation = &BusinessRuleViolation{Outcome: outcome, Transaction: sendTx}
			return nil
		}

		// The receive leg is evaluated on its own. CheckTransfer already
		// vetted the destination, so a non-SUCCESS here means the wallets
		// changed under us; roll the whole posting back rather than leave a
		// SUCCESS send leg with no applied effect.
		receiveOutcome := s.rules.CheckGeneral(to)
		if receiveOutcome != models.TransactionSuccess {
			return &BusinessRuleViolation{Outcome: receiveOutcome, Transaction: sendTx}
		}

		if err := s.wallets.AdjustBalance(r, from, sendTx); err != nil {
			return err
		}

		receiveID, err := r.NextSequence(models.SeqTransaction)
		if err != nil {
			return err
		}
		receiveTx := models.NewTransferReceived(uint(receiveID), to, req.Amount, receiveOutcome)
		if err := r.CreateTransaction(receiveTx); err != nil {
			return err
		}
		if err := s.wallets.AdjustBalance(r, to, receiveTx); err != nil {
			return err
		}

		sendMovementID, err := r.NextSequence(models.SeqMovement)
		if err != nil {
			return err
		}
		sendMovement := models.NewMovement(uint(sendMovementID), sendTx)
		sendMovement.CrossLink(receiveTx)
		if err := r.CreateMovement(sendMovement); err != nil {
			return err
		}

		receiveMovementID, err := r.NextSequence(models.SeqMovement)
		if err != nil {
			return err
		}
		receiveMovement := models.NewMovement(uint(receiveMovementID), receiveTx)
		receiveMovement.CrossLink(sendTx)
		if err := r.CreateMovement(receiveMovement); err != nil {
			return err
		}

		sendTx.MovementID = &sendMovement.ID
		sendTx.Movement = sendMovement
		if err := r.UpdateTransactionLinks(sendTx); err != nil {
			return err
		}
		receiveTx.MovementID = &receiveMovement.ID
		receiveTx.Movement = receiveMovement
		return r.UpdateTransactionLinks(receiveTx)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	if violation != nil {
		s.logRejection("transfer", req.FromWalletID, violation.Outcome)
		return nil, violation
	}

	s.afterCommit(ctx, posted, req.FromWalletID, req.ToWalletID)
	return posted, nil
}

// lockPair loads both wallets FOR UPDATE, always locking the lower id
// first so two opposing transfers cannot deadlock.
func lockPair(r repositories.LedgerRepository, fromID, toID uint) (*models.Wallet, *models.Wallet, error) {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	firstWallet, err := r.GetWalletForUpdate(first)
	if err != nil {
		return nil, nil, err
	}
	if first == second {
		return firstWallet, firstWallet, nil
	}
	secondWallet, err := r.GetWalletForUpdate(second)
	if err != nil {
		return nil, nil, err
	}

	if firstWallet.ID == fromID {
		return firstWallet, secondWallet, nil
	}
	return secondWallet, firstWallet, nil
}

func hasSenderMetadata(req DepositRequest) bool {
	return len(req.SenderName) > models.MinSenderFieldLen && len(req.SenderCpf) > models.MinSenderFieldLen
}

func (s *service) mapError(err error) error {
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return ErrWalletNotFound
	}
	if v, ok := AsBusinessRuleViolation(err); ok {
		return v
	}
	return persistenceError(err)
}

func (s *service) afterCommit(ctx context.Context, posted *models.Transaction, walletIDs ...uint) {
	if s.cache != nil {
		for _, id := range walletIDs {
			if err := s.cache.InvalidateWallet(ctx, id); err != nil {
				zap.L().Warn("failed to invalidate wallet cache", zap.Uint("wallet_id", id), zap.Error(err))
			}
		}
	}

	zap.L().Info("transaction posted",
		zap.Uint("transaction_id", posted.ID),
		zap.Uint("wallet_id", posted.WalletID),
		zap.String("operation", posted.OperationType.String()),
		zap.String("amount", posted.Amount.StringFixed(2)))
}

func (s *service) logRejection(operation string, walletID uint, outcome models.TransactionStatus) {
	zap.L().Info("transaction rejected",
		zap.String("operation", operation),
		zap.Uint("wallet_id", walletID),
		zap.String("outcome", outcome.String()))
}
