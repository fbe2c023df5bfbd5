package main

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gin-gonic/gin"

	"kintai.app/kintai/core"
	"kintai.app/kintai/infrastructure/communication"
	"kintai.app/kintai/infrastructure/devops"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/ledger/web/handlers"
	"kintai.app/kintai/ledger/web/handlers/attendance"
	"kintai.app/kintai/web/middlewares"
)

func main() {
	cfg, err := devops.LoadAppConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	dm, err := core.New(cfg.DSN, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := dm.Migrate(
		&core.Staff{},
		&model.AttendanceRecord{},
		&model.AttendanceHistory{},
		&model.WorkShift{},
	); err != nil {
		log.Fatal(err)
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	notifier := communication.ConnectSlack()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// QR clock stands outside the authenticated surface; the token in the
	// body is the whole credential.
	r.POST("/clock/qr", attendance.QRClockHandler(dm, notifier))

	protected := r.Group("/api/kintai/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		attendance.Register(protected, dm, notifier)

		protected.GET("/staff", handlers.ListStaffHandler(dm))
		protected.POST("/staff", handlers.CreateStaffHandler(dm))
		protected.PATCH("/staff/:staffId", handlers.UpdateStaffHandler(dm))
		protected.POST("/staff/:staffId/qr-token", handlers.RotateQRTokenHandler(dm))
		protected.POST("/staff/:staffId/photo", handlers.UploadStaffPhotoHandler(dm))

		protected.GET("/shifts", handlers.ListShiftsHandler(dm))
		protected.POST("/shifts", handlers.SaveShiftHandler(dm))
		protected.DELETE("/shifts/:shiftId", handlers.DeleteShiftHandler(dm))
	}

	r.Run(cfg.Addr)
}
