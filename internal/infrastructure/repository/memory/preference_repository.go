package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

type PreferenceRepository struct {
	mu     sync.RWMutex
	byUser map[string]preference.Preference
	now    func() time.Time
}

func NewPreferenceRepository(seed ...preference.Preference) *PreferenceRepository {
	repo := &PreferenceRepository{
		byUser: make(map[string]preference.Preference, len(seed)),
		now:    time.Now,
	}
	for _, item := range seed {
		if userID := strings.TrimSpace(item.UserID); userID != "" {
			item.UserID = userID
			repo.byUser[userID] = item
		}
	}
	return repo
}

func (r *PreferenceRepository) GetByUserID(_ context.Context, userID string) (preference.Preference, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byUser[strings.TrimSpace(userID)]
	return item, ok, nil
}

func (r *PreferenceRepository) Create(_ context.Context, pref preference.Preference) (bool, error) {
	userID := strings.TrimSpace(pref.UserID)
	if userID == "" {
		return false, fmt.Errorf("%w: user_id is required", usecase.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[userID]; exists {
		return false, nil
	}

	now := r.now().UTC()
	pref.UserID = userID
	pref.CreatedAt = now
	pref.UpdatedAt = now
	r.byUser[userID] = pref
	return true, nil
}

func (r *PreferenceRepository) UpdateTeams(_ context.Context, userID, westTeam, eastTeam string) error {
	userID = strings.TrimSpace(userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byUser[userID]
	if !ok {
		return fmt.Errorf("%w: user preference user_id=%s", usecase.ErrNotFound, userID)
	}
	item.WestTeam = strings.ToUpper(strings.TrimSpace(westTeam))
	item.EastTeam = strings.ToUpper(strings.TrimSpace(eastTeam))
	item.UpdatedAt = r.now().UTC()
	r.byUser[userID] = item
	return nil
}
