package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"ballot/contexts/poll-network/poll-actor/domain/entities"
	domainerrors "ballot/contexts/poll-network/poll-actor/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pollModel struct {
	ChainID       string `gorm:"column:chain_id;primaryKey"`
	Topic         string `gorm:"column:topic"`
	VotesPerVoter uint32 `gorm:"column:votes_per_voter"`
	AdminID       string `gorm:"column:admin_id"`
	HasStarted    bool   `gorm:"column:has_started"`
	IsClosed      bool   `gorm:"column:is_closed"`
	Results       []byte `gorm:"column:results;type:jsonb"`
}

func (pollModel) TableName() string { return "poll_chains" }

type participantModel struct {
	ChainID string `gorm:"column:chain_id;primaryKey"`
	UserID  string `gorm:"column:user_id;primaryKey"`
	Name    string `gorm:"column:name"`
}

func (participantModel) TableName() string { return "poll_participants" }

type nominationModel struct {
	ChainID      string `gorm:"column:chain_id;primaryKey"`
	NominationID string `gorm:"column:nomination_id;primaryKey"`
	UserID       string `gorm:"column:user_id"`
	Text         string `gorm:"column:text"`
}

func (nominationModel) TableName() string { return "poll_nominations" }

type rankingModel struct {
	ChainID       string `gorm:"column:chain_id;primaryKey"`
	UserID        string `gorm:"column:user_id;primaryKey"`
	NominationIDs []byte `gorm:"column:nomination_ids;type:jsonb"`
}

func (rankingModel) TableName() string { return "poll_rankings" }

// Repository persists poll state as one scalar row plus three key-ordered
// child tables. Save upserts everything the call touched inside a single
// transaction; the domain never deletes rows, so upserts are sufficient.
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

func (r *Repository) Load(ctx context.Context, chainID string) (entities.PollState, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("chain_id = ?", chainID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PollState{}, domainerrors.ErrPollNotFound
		}
		return entities.PollState{}, r.logError("poll_repo_load_failed", err, "chain_id", chainID)
	}

	state := entities.NewPollState()
	state.Topic = row.Topic
	state.VotesPerVoter = row.VotesPerVoter
	state.AdminID = row.AdminID
	state.HasStarted = row.HasStarted
	state.IsClosed = row.IsClosed
	if len(row.Results) > 0 {
		if err := json.Unmarshal(row.Results, &state.Results); err != nil {
			return entities.PollState{}, r.logError("poll_repo_decode_results_failed", err, "chain_id", chainID)
		}
	}

	var participants []participantModel
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).Find(&participants).Error; err != nil {
		return entities.PollState{}, r.logError("poll_repo_load_participants_failed", err, "chain_id", chainID)
	}
	for _, participant := range participants {
		state.Participants[participant.UserID] = participant.Name
	}

	var nominations []nominationModel
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).Find(&nominations).Error; err != nil {
		return entities.PollState{}, r.logError("poll_repo_load_nominations_failed", err, "chain_id", chainID)
	}
	for _, nomination := range nominations {
		state.Nominations[nomination.NominationID] = entities.Nomination{
			UserID: nomination.UserID,
			Text:   nomination.Text,
		}
	}

	var rankings []rankingModel
	if err := r.db.WithContext(ctx).Where("chain_id = ?", chainID).Find(&rankings).Error; err != nil {
		return entities.PollState{}, r.logError("poll_repo_load_rankings_failed", err, "chain_id", chainID)
	}
	for _, ranking := range rankings {
		var nominationIDs []string
		if len(ranking.NominationIDs) > 0 {
			if err := json.Unmarshal(ranking.NominationIDs, &nominationIDs); err != nil {
				return entities.PollState{}, r.logError("poll_repo_decode_ranking_failed", err,
					"chain_id", chainID,
					"user_id", ranking.UserID,
				)
			}
		}
		state.Rankings[ranking.UserID] = nominationIDs
	}

	return state, nil
}

func (r *Repository) Save(ctx context.Context, chainID string, state entities.PollState) error {
	resultsRaw, err := json.Marshal(state.Results)
	if err != nil {
		return r.logError("poll_repo_encode_results_failed", err, "chain_id", chainID)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pollRow := pollModel{
			ChainID:       chainID,
			Topic:         state.Topic,
			VotesPerVoter: state.VotesPerVoter,
			AdminID:       state.AdminID,
			HasStarted:    state.HasStarted,
			IsClosed:      state.IsClosed,
			Results:       resultsRaw,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "chain_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"topic":           pollRow.Topic,
				"votes_per_voter": pollRow.VotesPerVoter,
				"admin_id":        pollRow.AdminID,
				"has_started":     pollRow.HasStarted,
				"is_closed":       pollRow.IsClosed,
				"results":         pollRow.Results,
			}),
		}).Create(&pollRow).Error; err != nil {
			return err
		}

		for userID, name := range state.Participants {
			row := participantModel{ChainID: chainID, UserID: userID, Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "chain_id"}, {Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"name": row.Name,
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		for nominationID, nomination := range state.Nominations {
			row := nominationModel{
				ChainID:      chainID,
				NominationID: nominationID,
				UserID:       nomination.UserID,
				Text:         nomination.Text,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "chain_id"}, {Name: "nomination_id"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		for userID, nominationIDs := range state.Rankings {
			raw, err := json.Marshal(nominationIDs)
			if err != nil {
				return err
			}
			row := rankingModel{ChainID: chainID, UserID: userID, NominationIDs: raw}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "chain_id"}, {Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"nomination_ids": row.NominationIDs,
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return r.logError("poll_repo_save_conflict", err, "chain_id", chainID)
		}
		return r.logError("poll_repo_save_failed", err, "chain_id", chainID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "poll-network/poll-actor",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
