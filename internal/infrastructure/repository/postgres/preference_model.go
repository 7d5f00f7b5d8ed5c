package postgres

import (
	"database/sql"
	"time"
)

type userPreferenceTableModel struct {
	ID        int64          `db:"id"`
	UserID    string         `db:"user_id"`
	Email     sql.NullString `db:"email"`
	WestTeam  sql.NullString `db:"west_team"`
	EastTeam  sql.NullString `db:"east_team"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type userPreferenceInsertModel struct {
	UserID   string  `db:"user_id"`
	Email    *string `db:"email"`
	WestTeam *string `db:"west_team"`
	EastTeam *string `db:"east_team"`
}
