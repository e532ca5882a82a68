package database

import (
	"log"

	"gorm.io/gorm"

	livesessionModel "speaksy_backend/internals/features/livesessions/model"
	moduleModel "speaksy_backend/internals/features/modules/model"
	rosterModel "speaksy_backend/internals/features/roster/model"
	speechModel "speaksy_backend/internals/features/speech/model"
	userModel "speaksy_backend/internals/features/users/model"
)

// ChangeChannel is the NOTIFY channel every change trigger publishes to.
const ChangeChannel = "speaksy_changes"

// Migrate creates/updates tables, the atomic viewer-counter function, and the
// change-notification triggers. Idempotent; safe to run on every boot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.Profile{},
		&userModel.TokenBlacklist{},
		&livesessionModel.LiveSession{},
		&livesessionModel.LiveAttendance{},
		&rosterModel.TeacherStudent{},
		&rosterModel.StudentProgress{},
		&moduleModel.LearningModule{},
		&speechModel.SpeakingAttempt{},
	); err != nil {
		return err
	}

	// Viewer counter bumps happen server-side so concurrent joins never do a
	// read-modify-write from the client.
	if err := db.Exec(`
CREATE OR REPLACE FUNCTION live_sessions_bump_viewers(p_session_id uuid, p_delta integer)
RETURNS void AS $$
  UPDATE live_sessions
     SET live_session_viewers = live_session_viewers + p_delta
   WHERE live_session_id = p_session_id;
$$ LANGUAGE sql;
`).Error; err != nil {
		return err
	}

	// Row-change fan-out for realtime subscriptions (the pg_notify payload is
	// consumed by the Notifier in this package).
	if err := db.Exec(`
CREATE OR REPLACE FUNCTION speaksy_notify_changes()
RETURNS trigger AS $$
DECLARE
  payload text;
BEGIN
  payload := json_build_object(
    'table',  TG_TABLE_NAME,
    'action', TG_OP,
    'new',    CASE WHEN TG_OP = 'DELETE' THEN NULL ELSE row_to_json(NEW) END,
    'old',    CASE WHEN TG_OP = 'INSERT' THEN NULL ELSE row_to_json(OLD) END
  )::text;
  PERFORM pg_notify('` + ChangeChannel + `', payload);
  RETURN COALESCE(NEW, OLD);
END;
$$ LANGUAGE plpgsql;
`).Error; err != nil {
		return err
	}

	for _, table := range []string{"live_sessions", "teacher_students", "student_progress"} {
		if err := db.Exec(`
DROP TRIGGER IF EXISTS ` + table + `_notify ON ` + table + `;
CREATE TRIGGER ` + table + `_notify
AFTER INSERT OR UPDATE OR DELETE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION speaksy_notify_changes();
`).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Migrations applied.")
	return nil
}
