package preference

import "context"

// Repository is the persistence port for user preferences.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Preference, bool, error)
	Create(ctx context.Context, pref Preference) (bool, error)
	UpdateTeams(ctx context.Context, userID, westTeam, eastTeam string) error
}
