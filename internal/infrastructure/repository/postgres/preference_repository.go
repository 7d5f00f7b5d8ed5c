package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	qb "github.com/ASchaffer8770/nhl-tracker/internal/platform/querybuilder"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

const (
	userPreferencesTable = "user_preferences"

	// upsertConflictClause targets the partial unique index on active rows.
	upsertConflictClause = "ON CONFLICT (user_id) WHERE deleted_at IS NULL DO NOTHING"
)

type PreferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (preference.Preference, bool, error) {
	query, args, err := getByUserIDQuery(userID)
	if err != nil {
		return preference.Preference{}, false, fmt.Errorf("build get user preference query: %w", err)
	}

	var row userPreferenceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return preference.Preference{}, false, nil
		}
		return preference.Preference{}, false, fmt.Errorf("get user preference: %w", err)
	}

	return preferenceFromRow(row), true, nil
}

// Create inserts an empty record. created is false when the user already has one.
func (r *PreferenceRepository) Create(ctx context.Context, pref preference.Preference) (bool, error) {
	query, args, err := createQuery(pref)
	if err != nil {
		return false, fmt.Errorf("build create user preference query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("create user preference: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create user preference rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *PreferenceRepository) UpdateTeams(ctx context.Context, userID, westTeam, eastTeam string) error {
	query, args, err := updateTeamsQuery(userID, westTeam, eastTeam)
	if err != nil {
		return fmt.Errorf("build update user preference query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user preference: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user preference rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user preference user_id=%s", usecase.ErrNotFound, userID)
	}
	return nil
}

func getByUserIDQuery(userID string) (string, []any, error) {
	return qb.Select("*").
		From(userPreferencesTable).
		Where(
			qb.Eq("user_id", strings.TrimSpace(userID)),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
}

func createQuery(pref preference.Preference) (string, []any, error) {
	insertModel := userPreferenceInsertModel{
		UserID:   strings.TrimSpace(pref.UserID),
		Email:    optionalString(pref.Email),
		WestTeam: optionalString(strings.ToUpper(pref.WestTeam)),
		EastTeam: optionalString(strings.ToUpper(pref.EastTeam)),
	}
	return qb.InsertModel(userPreferencesTable, insertModel, upsertConflictClause)
}

func updateTeamsQuery(userID, westTeam, eastTeam string) (string, []any, error) {
	return qb.Update(userPreferencesTable).
		Set("west_team", strings.ToUpper(strings.TrimSpace(westTeam))).
		Set("east_team", strings.ToUpper(strings.TrimSpace(eastTeam))).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", strings.TrimSpace(userID)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
}

func preferenceFromRow(row userPreferenceTableModel) preference.Preference {
	return preference.Preference{
		UserID:    row.UserID,
		Email:     strings.TrimSpace(row.Email.String),
		WestTeam:  strings.ToUpper(strings.TrimSpace(row.WestTeam.String)),
		EastTeam:  strings.ToUpper(strings.TrimSpace(row.EastTeam.String)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
