package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/utils"
	"kintai.app/kintai/web/common"
	"kintai.app/kintai/web/middlewares"
)

type StaffDTO struct {
	ID   string `json:"id" binding:"required,uuid"`
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

type StaffUpdateDTO struct {
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	IsActive *bool   `json:"isActive"`
}

// ownerID resolves the acting owner or writes a 401 and returns false.
func ownerID(c *gin.Context) (string, bool) {
	auth, ok := middlewares.GetAuth(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("no owner identity"))
		return "", false
	}
	return auth.OwnerID, true
}

func ListStaffHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		var staff []core.Staff
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			staff, err = core.ListStaff(db, owner)
			return err
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSearchResponse(staff, int64(len(staff))))
	}
}

func CreateStaffHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		var data StaffDTO
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		staff := core.Staff{
			ID:       data.ID,
			OwnerID:  owner,
			Name:     data.Name,
			Code:     data.Code,
			QRToken:  uuid.NewString(),
			IsActive: true,
		}

		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			return db.Create(&staff).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(staff))
	}
}

func UpdateStaffHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		staffID := c.Param("staffId")

		var data StaffUpdateDTO
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
			return
		}

		updates := map[string]interface{}{}
		if data.Name != nil {
			updates["name"] = *data.Name
		}
		if data.Code != nil {
			updates["code"] = *data.Code
		}
		if data.IsActive != nil {
			updates["is_active"] = *data.IsActive
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("no fields to update"))
			return
		}

		var staff *core.Staff
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			staff, err = core.FindStaffByID(db, owner, staffID)
			if err != nil {
				return err
			}
			if staff == nil {
				return nil
			}
			return db.Model(staff).Updates(updates).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if staff == nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("staff not found"))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(staff))
	}
}

// RotateQRTokenHandler invalidates the old token immediately; badges printed
// with it stop working.
func RotateQRTokenHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		staffID := c.Param("staffId")
		token := uuid.NewString()

		var staff *core.Staff
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			staff, err = core.FindStaffByID(db, owner, staffID)
			if err != nil {
				return err
			}
			if staff == nil {
				return nil
			}
			return db.Model(staff).Update("qr_token", token).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if staff == nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("staff not found"))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"qrToken": token}))
	}
}

// UploadStaffPhotoHandler stores the photo on local disk and records the path.
func UploadStaffPhotoHandler(dm *core.DatabaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		staffID := c.Param("staffId")

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing photo file"))
			return
		}

		ext := filepath.Ext(file.Filename)
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(fmt.Sprintf("unsupported file type %s", ext)))
			return
		}

		var staff *core.Staff
		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			staff, err = core.FindStaffByID(db, owner, staffID)
			return err
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		if staff == nil {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("staff not found"))
			return
		}

		dst := filepath.Join("uploads", fmt.Sprintf("%s%s", staffID, ext))
		if err := c.SaveUploadedFile(file, dst); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		if err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			return db.Model(staff).Update("photo", utils.Ptr(dst)).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"photo": dst}))
	}
}
