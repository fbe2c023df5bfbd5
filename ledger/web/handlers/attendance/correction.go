package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ledger "kintai.app/kintai/ledger/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/web/common"
)

type CorrectionRequestDTO struct {
	StaffID string  `json:"staffId" binding:"required"`
	PairID  string  `json:"pairId,omitempty"`
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	Type    string  `json:"type" binding:"required,oneof=clock_in clock_out"`
	Time    string  `json:"time" binding:"required,datetime=15:04"`
	Note    *string `json:"note,omitempty"`
	Reason  string  `json:"reason" binding:"required"`
}

type CreatePairRequestDTO struct {
	StaffID string `json:"staffId" binding:"required"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	InTime  string `json:"inTime" binding:"required,datetime=15:04"`
	OutTime string `json:"outTime" binding:"required,datetime=15:04"`
	Reason  string `json:"reason" binding:"required"`
}

type DeletePairRequestDTO struct {
	Reason string `json:"reason" binding:"required"`
}

func (ep *Endpoint) Correct(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	var dto CorrectionRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ledger.Correct(ep.base.GetDB(c), ownerID, ledger.CorrectionParams{
		StaffID: dto.StaffID,
		PairID:  dto.PairID,
		Date:    dto.Date,
		Type:    model.RecordType(dto.Type),
		Time:    dto.Time,
		Note:    dto.Note,
		Reason:  dto.Reason,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) CreatePair(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	var dto CreatePairRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ledger.CreatePair(ep.base.GetDB(c), ownerID, ledger.PairParams{
		StaffID: dto.StaffID,
		Date:    dto.Date,
		InTime:  dto.InTime,
		OutTime: dto.OutTime,
		Reason:  dto.Reason,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

func (ep *Endpoint) DeletePair(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	pairID := c.Param("pairId")

	var dto DeletePairRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ledger.DeletePair(ep.base.GetDB(c), ownerID, pairID, dto.Reason); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) PairHistory(c *gin.Context) {
	ownerID, ok := ep.owner(c)
	if !ok {
		return
	}

	rows, err := ledger.PairHistory(ep.base.GetDB(c), ownerID, c.Param("pairId"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(rows))
}
