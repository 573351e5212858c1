package shares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rinkside/rinkside/pkg/rinkside/blob"
	"github.com/rinkside/rinkside/pkg/rinkside/codes"
	"github.com/rinkside/rinkside/pkg/rinkside/models"
)

const sharePrefix = "_shares/"

// ErrNotFound is returned when a share code or its game blob cannot be
// resolved.
var ErrNotFound = errors.New("share not found")

// Service creates and resolves share codes, stored one JSON document per
// code. Shares are immutable write-once records, so no cache or lock is kept;
// every lookup goes straight to storage.
type Service struct {
	store blob.Store
}

// NewService creates a share service backed by store.
func NewService(store blob.Store) *Service {
	return &Service{store: store}
}

// CreateShare mints a share code for a game and persists the mapping. Codes
// come from the same alphabet as admin codes; uniqueness is not re-checked
// against existing shares, a collision would need ~1 in 10^12 luck.
func (s *Service) CreateShare(ctx context.Context, groupID, gameID string) (*models.GameShare, error) {
	share := &models.GameShare{
		Code:      codes.Generate(codes.AdminAlphabet, codes.AdminCodeLength),
		GroupID:   groupID,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(share, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal share: %w", err)
	}
	if err := s.store.Put(ctx, sharePrefix+share.Code+".json", data); err != nil {
		return nil, fmt.Errorf("persist share: %w", err)
	}

	return share, nil
}

// Share resolves a code to its mapping. Missing blobs and malformed JSON are
// both reported as ErrNotFound; a corrupt share looks no different from one
// that never existed.
func (s *Service) Share(ctx context.Context, code string) (*models.GameShare, error) {
	data, err := s.store.Get(ctx, sharePrefix+code+".json")
	if err != nil {
		return nil, ErrNotFound
	}

	var share models.GameShare
	if err := json.Unmarshal(data, &share); err != nil {
		return nil, ErrNotFound
	}
	return &share, nil
}

// GameJSON reads the referenced game blob verbatim, without re-serialization,
// so the client reparses exactly the bytes that were uploaded. Any failure is
// ErrNotFound.
func (s *Service) GameJSON(ctx context.Context, share *models.GameShare) ([]byte, error) {
	data, err := s.store.Get(ctx, fmt.Sprintf("%s/games/%s.json", share.GroupID, share.GameID))
	if err != nil {
		return nil, ErrNotFound
	}
	return data, nil
}
