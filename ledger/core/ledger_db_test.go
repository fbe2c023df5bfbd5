package core

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
)

const inactiveStaff = "staff-c"

// The write paths run real SQL inside transactions, so they are exercised
// here against an in-memory SQLite database carrying the same table and
// column shapes as the production schema.
var ledgerTestSchema = []string{
	`CREATE TABLE staff (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		code TEXT,
		qr_token TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		photo TEXT,
		attributes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE attendance_records (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		staff_id TEXT NOT NULL,
		type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		pair_id TEXT,
		note TEXT,
		corrected_at INTEGER,
		correction_reason TEXT,
		is_manual_entry BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE attendance_histories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		attendance_id TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		pair_id TEXT,
		record_type TEXT NOT NULL,
		old_timestamp INTEGER,
		new_timestamp INTEGER,
		old_note TEXT,
		new_note TEXT,
		reason TEXT,
		modified_by TEXT NOT NULL,
		modified_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

func newLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A fresh connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range ledgerTestSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}

	seed := []core.Staff{
		{ID: staffA, OwnerID: testOwner, Name: "Aoki", Code: "A01", QRToken: "tok-a", IsActive: true},
		{ID: staffB, OwnerID: testOwner, Name: "Baba", Code: "B02", QRToken: "tok-b", IsActive: true},
		{ID: inactiveStaff, OwnerID: testOwner, Name: "Chiba", Code: "C03", QRToken: "tok-c", IsActive: false},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed staff: %v", err)
	}
	// GORM omits the zero-value false because of the `default:true` tag, so
	// force the inactive flag past the column default.
	if err := db.Exec(`UPDATE staff SET is_active = 0 WHERE id = ?`, inactiveStaff).Error; err != nil {
		t.Fatalf("failed to deactivate seed staff: %v", err)
	}

	return db
}

func clockAt(t *testing.T, db *gorm.DB, staffID string, typ model.RecordType, ts int64) *ClockResult {
	t.Helper()
	res, err := RecordClock(db, testOwner, ClockParams{StaffID: staffID, Type: typ, Timestamp: &ts})
	if err != nil {
		t.Fatalf("RecordClock(%s, %s): %v", staffID, typ, err)
	}
	return res
}

func pairHistoryRows(t *testing.T, db *gorm.DB, pairID string) []model.AttendanceHistory {
	t.Helper()
	var rows []model.AttendanceHistory
	if err := db.Where("pair_id = ?", pairID).Order("id").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	return rows
}

func TestRecordClockSelfPairs(t *testing.T) {
	db := newLedgerDB(t)

	res := clockAt(t, db, staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0))

	assert.Equal(t, res.RecordID, res.PairID)

	var rec model.AttendanceRecord
	assert.NoError(t, db.First(&rec, "id = ?", res.RecordID).Error)
	assert.Equal(t, rec.ID, rec.PairID)
}

func TestClockOutAdoptsLatestPriorClockIn(t *testing.T) {
	db := newLedgerDB(t)

	clockAt(t, db, staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 8, 0))
	in2 := clockAt(t, db, staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 14, 0))
	out := clockAt(t, db, staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 18, 0))

	assert.Equal(t, in2.PairID, out.PairID)
}

func TestClockOutWithoutClockInStaysOrphan(t *testing.T) {
	db := newLedgerDB(t)

	ts := jstMillis(2026, time.August, 3, 18, 0)
	res, err := RecordClock(db, testOwner, ClockParams{StaffID: staffA, Type: model.TypeClockOut, Timestamp: &ts})

	assert.NoError(t, err)
	assert.Empty(t, res.PairID)
}

func TestRecordClockCrossOwnerNotFound(t *testing.T) {
	db := newLedgerDB(t)

	ts := jstMillis(2026, time.August, 3, 9, 0)
	_, err := RecordClock(db, "owner-2", ClockParams{StaffID: staffA, Type: model.TypeClockIn, Timestamp: &ts})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInactiveStaffRejectedOnlyOnTokenPath(t *testing.T) {
	db := newLedgerDB(t)
	ts := jstMillis(2026, time.August, 3, 9, 0)

	_, err := RecordClockByToken(db, "tok-c", model.TypeClockIn, &ts, "")
	assert.ErrorIs(t, err, ErrInvalid)

	// The authenticated path does not check is_active.
	_, err = RecordClock(db, testOwner, ClockParams{StaffID: inactiveStaff, Type: model.TypeClockIn, Timestamp: &ts})
	assert.NoError(t, err)
}

func TestCorrectExistingWritesOneHistoryRowWithOldTimestamp(t *testing.T) {
	db := newLedgerDB(t)

	oldTs := jstMillis(2026, time.August, 3, 9, 0)
	in := clockAt(t, db, staffA, model.TypeClockIn, oldTs)

	res, err := Correct(db, testOwner, CorrectionParams{
		StaffID: staffA,
		PairID:  in.PairID,
		Date:    "2026-08-03",
		Type:    model.TypeClockIn,
		Time:    "08:45",
		Reason:  "forgot badge",
	})
	assert.NoError(t, err)
	assert.Equal(t, in.RecordID, res.RecordID)

	rows := pairHistoryRows(t, db, in.PairID)
	assert.Len(t, rows, 1)
	assert.NotNil(t, rows[0].OldTimestamp)
	assert.Equal(t, oldTs, *rows[0].OldTimestamp)
	assert.NotNil(t, rows[0].NewTimestamp)
	assert.Equal(t, jstMillis(2026, time.August, 3, 8, 45), *rows[0].NewTimestamp)

	var rec model.AttendanceRecord
	assert.NoError(t, db.First(&rec, "id = ?", in.RecordID).Error)
	assert.Equal(t, jstMillis(2026, time.August, 3, 8, 45), rec.Timestamp)
	assert.NotNil(t, rec.CorrectedAt)
	assert.Equal(t, "forgot badge", rec.CorrectionReason)
}

func TestCorrectUnknownPairNotFound(t *testing.T) {
	db := newLedgerDB(t)

	_, err := Correct(db, testOwner, CorrectionParams{
		StaffID: staffA,
		PairID:  "no-such-pair",
		Date:    "2026-08-03",
		Type:    model.TypeClockIn,
		Time:    "09:00",
		Reason:  "typo",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCorrectCreatesRecordWithAbsentOldTimestamp(t *testing.T) {
	db := newLedgerDB(t)

	res, err := Correct(db, testOwner, CorrectionParams{
		StaffID: staffA,
		Date:    "2026-08-03",
		Type:    model.TypeClockIn,
		Time:    "09:00",
		Reason:  "missed scan",
	})
	assert.NoError(t, err)
	assert.Equal(t, res.RecordID, res.PairID)

	var rec model.AttendanceRecord
	assert.NoError(t, db.First(&rec, "id = ?", res.RecordID).Error)
	assert.True(t, rec.IsManualEntry)
	assert.Equal(t, jstMillis(2026, time.August, 3, 9, 0), rec.Timestamp)

	rows := pairHistoryRows(t, db, res.PairID)
	assert.Len(t, rows, 1)
	assert.Nil(t, rows[0].OldTimestamp)
	assert.NotNil(t, rows[0].NewTimestamp)
}

func TestDeletePairNotIdempotent(t *testing.T) {
	db := newLedgerDB(t)

	in := clockAt(t, db, staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0))
	clockAt(t, db, staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 18, 0))

	assert.NoError(t, DeletePair(db, testOwner, in.PairID, "entered twice"))

	var count int64
	assert.NoError(t, db.Model(&model.AttendanceRecord{}).Where("pair_id = ?", in.PairID).Count(&count).Error)
	assert.Zero(t, count)

	rows := pairHistoryRows(t, db, in.PairID)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Nil(t, row.NewTimestamp)
		assert.NotNil(t, row.OldTimestamp)
	}

	assert.ErrorIs(t, DeletePair(db, testOwner, in.PairID, "entered twice"), ErrNotFound)
}

func TestDeletePairRejectsClockOutID(t *testing.T) {
	db := newLedgerDB(t)

	clockAt(t, db, staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0))
	out := clockAt(t, db, staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 18, 0))

	assert.ErrorIs(t, DeletePair(db, testOwner, out.RecordID, "wrong side"), ErrNotFound)
}
