package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kintai.app/kintai/core"
	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/utils"
)

func main() {
	dsn := os.Getenv("DSN") //"root:development@tcp(localhost:3306)/kintai?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal(err)
	}

	models := []interface{}{
		&core.Staff{},
		&model.AttendanceRecord{},
		&model.AttendanceHistory{},
		&model.WorkShift{},
	}

	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			err := db.Migrator().CreateTable(m)
			if err != nil {
				log.Fatalf("failed to create table for %T: %v", m, err)
			}
		}
	}

	ownerID := os.Getenv("KINTAI_OWNER_ID")
	if ownerID == "" {
		log.Println("KINTAI_OWNER_ID not set, skipping sample data")
		return
	}

	staff := []core.Staff{
		{ID: uuid.NewString(), OwnerID: ownerID, Name: "佐藤 花子", Code: "S001", QRToken: uuid.NewString(), IsActive: true},
		{ID: uuid.NewString(), OwnerID: ownerID, Name: "鈴木 太郎", Code: "S002", QRToken: uuid.NewString(), IsActive: true},
	}
	if err := db.Create(&staff).Error; err != nil {
		log.Fatalf("failed to seed staff: %v", err)
	}

	shift := model.WorkShift{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         "日勤",
		Start:        "09:00",
		Finish:       "18:00",
		BreakMinutes: 60,
		IsDefault:    true,
	}
	if err := db.Create(&shift).Error; err != nil {
		log.Fatalf("failed to seed shift: %v", err)
	}

	// one completed day for the first staff member
	in := time.Now().Add(-9 * time.Hour).UnixMilli()
	out := time.Now().Add(-30 * time.Minute).UnixMilli()
	seedPair(db, ownerID, staff[0].ID, in, out)

	// and a standard shift on the first of this month for the second, so the
	// monthly summary has something to aggregate
	firstOfMonth := utils.MustParseDate(utils.TokyoNow().Format("2006-01") + "-01")
	monthIn := time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 9, 0, 0, 0, utils.TokyoTZ).UnixMilli()
	monthOut := time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 18, 0, 0, 0, utils.TokyoTZ).UnixMilli()
	seedPair(db, ownerID, staff[1].ID, monthIn, monthOut)

	log.Println("seed complete")
}

func seedPair(db *gorm.DB, ownerID, staffID string, in, out int64) {
	for _, p := range []struct {
		typ model.RecordType
		ts  int64
	}{
		{model.TypeClockIn, in},
		{model.TypeClockOut, out},
	} {
		_, err := ledger.RecordClock(db, ownerID, ledger.ClockParams{
			StaffID:   staffID,
			Type:      p.typ,
			Timestamp: &p.ts,
		})
		if err != nil {
			log.Fatalf("failed to seed record: %v", err)
		}
	}
}
