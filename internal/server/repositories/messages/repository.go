package messages

import (
	"context"
	"time"

	"github.com/agency/cryptoservice/internal/server/models"
)

// Repository is the durable store for secret message records.
//
// GetForUpdate takes a row lock and is only meaningful inside a
// transaction; the lifecycle engine always calls it through dbx.WithTx so
// the verify-mutate-delete sequence of a redemption is atomic per id.
type Repository interface {
	Create(ctx context.Context, m *models.Message) error
	GetForUpdate(ctx context.Context, id string) (*models.Message, error)
	UpdateTryCount(ctx context.Context, id string, tryCount int) error
	Delete(ctx context.Context, id string) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
