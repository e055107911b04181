// Package services contains the server-side business logic. This file
// implements MessageService, the lifecycle engine for one-time secret
// messages: saving (credential generation, encryption, persistence),
// redemption (credential verification, attempt accounting, destructive
// read), and age-based cleanup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agency/cryptoservice/internal/common"
	"github.com/agency/cryptoservice/internal/cryptox"
	"github.com/agency/cryptoservice/internal/dbx"
	"github.com/agency/cryptoservice/internal/logging"
	"github.com/agency/cryptoservice/internal/server/config"
	"github.com/agency/cryptoservice/internal/server/models"
	"github.com/agency/cryptoservice/internal/server/repositories/messages"
	"github.com/agency/cryptoservice/internal/server/repositories/repomanager"
)

// Failure reasons surfaced to the caller. A wrong password is reported
// before the key is ever checked, so a failed password reveals nothing
// about the key.
const (
	ReasonInvalidPassword = "Invalid password"
	ReasonInvalidKey      = "Invalid AES key. Decryption failed."
)

// SaveResult carries the freshly generated credentials back to the sender.
// This response is the only place the password and key ever exist outside
// the sender's hands; the server stores neither.
type SaveResult struct {
	ID       string
	Password string
	Key      string
}

// RedeemResult is the outcome of a successful redemption. Deleted is always
// true: the record is destroyed in the same transaction that read it.
type RedeemResult struct {
	Message string
	Deleted bool
}

// WrongCredentialsError reports a failed redemption attempt. Password and
// key failures share one attempt budget; RemainingTries counts what is left
// of it, and Deleted reports whether this attempt exhausted the budget and
// destroyed the record.
type WrongCredentialsError struct {
	Reason         string
	RemainingTries int
	Deleted        bool
}

func (e *WrongCredentialsError) Error() string {
	return e.Reason
}

// MessageService owns the message lifecycle state machine. All mutation of
// a record happens here; the repositories are plain storage.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	generator   *cryptox.Generator
	hashCost    int
	maxTries    int
	logger      logging.Logger
}

// NewMessageService constructs a MessageService using repositories and
// server config.
func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, g *cryptox.Generator, cfg *config.Config, logger logging.Logger) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		generator:   g,
		hashCost:    cfg.PasswordHashCost,
		maxTries:    cfg.MaxTries,
		logger:      logger.With("module", "message_service"),
	}
}

// MaxTries returns the configured attempt budget.
func (s *MessageService) MaxTries() int {
	return s.maxTries
}

// Save encrypts plaintext under a fresh key and nonce, hashes a fresh
// password, and persists the record in a single insert. It returns the id
// together with the plaintext password and base64 key; none of the three
// are retained server-side.
func (s *MessageService) Save(ctx context.Context, plaintext string) (*SaveResult, error) {
	if plaintext == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", common.ErrorValidation)
	}

	key, err := s.generator.Key()
	if err != nil {
		return nil, fmt.Errorf("key generation: %w", err)
	}

	password, err := s.generator.Password()
	if err != nil {
		return nil, fmt.Errorf("password generation: %w", err)
	}

	nonce, err := s.generator.Nonce()
	if err != nil {
		return nil, fmt.Errorf("nonce generation: %w", err)
	}

	rawKey, err := cryptox.DecodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("key encoding: %w", err)
	}
	defer common.WipeBytes(rawKey)

	ciphertext, err := cryptox.Encrypt([]byte(plaintext), rawKey, nonce)
	if err != nil {
		return nil, fmt.Errorf("encryption: %w", err)
	}

	passwordHash, err := cryptox.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing: %w", err)
	}

	m := &models.Message{
		ID:           uuid.NewString(),
		Ciphertext:   ciphertext,
		Nonce:        nonce,
		PasswordHash: passwordHash,
		TryCount:     0,
		CreatedAt:    time.Now().UTC(),
	}

	repo := s.repomanager.Messages(s.db)
	if err := repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}

	s.logger.Info(ctx, "secret message saved", "id", m.ID)

	return &SaveResult{ID: m.ID, Password: password, Key: key}, nil
}

// Redeem verifies both credentials and performs the destructive read. The
// whole read-verify-mutate sequence runs inside one transaction with the
// record's row locked, so concurrent redemptions of the same id serialize
// and the attempt budget cannot be overspent.
//
// Error returns: common.ErrorValidation for empty inputs (no store access,
// no attempt consumed), common.ErrorNotFound for unknown ids — already
// redeemed, exhausted, expired and never-existed are indistinguishable —
// and *WrongCredentialsError when a credential fails.
func (s *MessageService) Redeem(ctx context.Context, id, password, key string) (*RedeemResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: message id cannot be empty", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", common.ErrorValidation)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: key cannot be empty", common.ErrorValidation)
	}

	var (
		result  *RedeemResult
		credErr *WrongCredentialsError
	)

	// The failure path mutates the record (counter rewrite or delete) and
	// must commit; credErr travels outside the closure so returning it does
	// not roll the transaction back.
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Messages(tx)

		m, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !cryptox.CheckPassword(password, m.PasswordHash) {
			credErr, err = s.failAttempt(ctx, repo, m, ReasonInvalidPassword)
			return err
		}

		rawKey, err := cryptox.DecodeKey(key)
		if err != nil {
			// A malformed key is indistinguishable from a wrong one.
			credErr, err = s.failAttempt(ctx, repo, m, ReasonInvalidKey)
			return err
		}
		defer common.WipeBytes(rawKey)

		plaintext, err := cryptox.Decrypt(m.Ciphertext, rawKey, m.Nonce)
		if err != nil {
			credErr, err = s.failAttempt(ctx, repo, m, ReasonInvalidKey)
			return err
		}

		if err := repo.Delete(ctx, m.ID); err != nil {
			return err
		}

		result = &RedeemResult{Message: string(plaintext), Deleted: true}
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "message not found", "id", id)
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error redeeming message: %w", err)
	}

	if credErr != nil {
		if credErr.Deleted {
			s.logger.Warn(ctx, "message deleted after max failed attempts", "id", id, "max_tries", s.maxTries)
		} else {
			s.logger.Info(ctx, "failed redemption attempt", "id", id, "remaining_tries", credErr.RemainingTries)
		}
		return nil, credErr
	}

	s.logger.Info(ctx, "message redeemed and deleted", "id", id)
	return result, nil
}

// failAttempt consumes one attempt: it rewrites the counter, or deletes the
// record once the budget is exhausted. The returned error is a repository
// failure only; the credential failure itself is the first return value.
func (s *MessageService) failAttempt(ctx context.Context, repo messages.Repository, m *models.Message, reason string) (*WrongCredentialsError, error) {
	tries := m.TryCount + 1
	remaining := s.maxTries - tries

	if remaining <= 0 {
		if err := repo.Delete(ctx, m.ID); err != nil {
			return nil, err
		}
		return &WrongCredentialsError{Reason: reason, RemainingTries: 0, Deleted: true}, nil
	}

	if err := repo.UpdateTryCount(ctx, m.ID, tries); err != nil {
		return nil, err
	}
	return &WrongCredentialsError{Reason: reason, RemainingTries: remaining, Deleted: false}, nil
}

// Cleanup deletes every message older than maxAge in one bulk operation and
// returns the number of deleted records.
func (s *MessageService) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	repo := s.repomanager.Messages(s.db)
	count, err := repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up messages: %w", err)
	}

	return count, nil
}
