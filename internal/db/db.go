package db

import (
	"fmt"

	"focustube/internal/auth"
	"focustube/internal/ledger"
	"focustube/internal/note"
	"focustube/internal/timer"
	"focustube/internal/timetable"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
	// which the ledger relies on to tell retries apart from real failures.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&ledger.Profile{},
		&ledger.Achievement{},
		&ledger.Award{},
		&note.Note{},
		&timetable.Event{},
		&timer.Session{},
	); err != nil {
		return err
	}

	// Award idempotency: unique per user + idempotency_key where not null
	if err := gdb.Exec(`
create unique index if not exists uq_awards_user_idem
on awards(user_id, idempotency_key)
where idempotency_key is not null;
`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_notes_user_pinned on notes(user_id, is_pinned, created_at desc);`,
		`create index if not exists idx_events_user_start on timetable_events(user_id, start_time);`,
		`create index if not exists idx_sessions_user_completed on pomodoro_sessions(user_id, completed);`,
		`create index if not exists idx_achievements_user_created on achievements(user_id, created_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
