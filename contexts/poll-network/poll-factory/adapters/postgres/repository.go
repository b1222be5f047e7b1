package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainerrors "ballot/contexts/poll-network/poll-factory/domain/errors"
	"ballot/contexts/poll-network/poll-factory/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type createdPollModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	CreatorID string    `gorm:"column:creator_id;index"`
	ChainID   string    `gorm:"column:chain_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (createdPollModel) TableName() string { return "created_polls" }

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	TargetChain string     `gorm:"column:target_chain"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "poll_message_outbox" }

// Repository persists the creator ledger (append-only rows, creation order
// by serial id) and the cross-chain message outbox.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) AppendCreatedPoll(ctx context.Context, creatorID string, chainID string) error {
	row := createdPollModel{
		CreatorID: creatorID,
		ChainID:   chainID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("factory_repo_append_failed", err,
			"creator_id", creatorID,
			"chain_id", chainID,
		)
	}
	return nil
}

func (r *Repository) ListCreatedPolls(ctx context.Context, creatorID string) ([]string, error) {
	var rows []createdPollModel
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("factory_repo_list_failed", err, "creator_id", creatorID)
	}
	chainIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		chainIDs = append(chainIDs, row.ChainID)
	}
	return chainIDs, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	createdAt := message.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	row := outboxModel{
		OutboxID:    message.OutboxID,
		TargetChain: message.TargetChain,
		Payload:     message.Payload,
		Status:      outboxStatusPending,
		CreatedAt:   createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrOutboxConflict
		}
		return r.logError("factory_repo_outbox_append_failed", err,
			"outbox_id", message.OutboxID,
			"target_chain", message.TargetChain,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC, outbox_id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("factory_repo_outbox_list_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:    row.OutboxID,
			TargetChain: row.TargetChain,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	publishedAt = publishedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &publishedAt,
		})
	if result.Error != nil {
		return r.logError("factory_repo_outbox_mark_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOutboxConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "poll-network/poll-factory",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("factory repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// SystemClock and UUIDGenerator satisfy the factory's Clock and IDGenerator
// ports for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
