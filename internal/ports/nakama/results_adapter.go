package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"klondike/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// storageWriter is the slice of runtime.NakamaModule the adapter needs.
type storageWriter interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaResultAdapter implements ports.ResultPort with Nakama storage
// objects, one per won deal, owned by the player.
type NakamaResultAdapter struct {
	nk storageWriter
}

// NewNakamaResultAdapter creates a new result adapter.
func NewNakamaResultAdapter(nk storageWriter) *NakamaResultAdapter {
	return &NakamaResultAdapter{nk: nk}
}

// RecordWin writes the result under StorageCollectionResults.
func (a *NakamaResultAdapter) RecordWin(ctx context.Context, result ports.GameResult) error {
	if result.UserID == "" {
		return fmt.Errorf("record win: missing user id")
	}
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      StorageCollectionResults,
		Key:             resultKey(result),
		UserID:          result.UserID,
		Value:           string(value),
		PermissionRead:  1, // owner read
		PermissionWrite: 0, // server only
	}})
	if err != nil {
		return fmt.Errorf("failed to write result for user %s: %w", result.UserID, err)
	}
	return nil
}

func resultKey(r ports.GameResult) string {
	return fmt.Sprintf("%s:%d", r.MatchID, r.Seed)
}
