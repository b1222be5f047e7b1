package queries

import (
	"context"

	"ballot/contexts/poll-network/poll-factory/ports"
)

type CreatedPollsUseCase struct {
	Ledger ports.LedgerStore
}

// CreatedPolls returns every chain id the creator has spawned, in creation
// order, duplicates included.
func (uc CreatedPollsUseCase) CreatedPolls(ctx context.Context, creatorID string) ([]string, error) {
	chainIDs, err := uc.Ledger.ListCreatedPolls(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if chainIDs == nil {
		return []string{}, nil
	}
	return chainIDs, nil
}
