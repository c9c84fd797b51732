package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/xiebiao/bookshop/internal/application/report"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ReportHandler 报表HTTP处理器
type ReportHandler struct {
	reports *appreport.ReportsUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reports *appreport.ReportsUseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// BookDetail 图书详情报表
// @Summary      图书详情报表(含出版社名、分类名)
// @Tags         报表模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /reports/books/{id} [get]
func (h *ReportHandler) BookDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	row, err := h.reports.BookDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, row)
}

// AuthorBibliography 作者作品目录
// @Summary      作者作品目录
// @Tags         报表模块
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /reports/authors/{id}/bibliography [get]
func (h *ReportHandler) AuthorBibliography(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rows, err := h.reports.AuthorBibliography(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// CustomerOrderHistory 当前客户订单历史
// @Summary      当前客户订单历史(含每单明细条数)
// @Tags         报表模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /reports/orders/history [get]
func (h *ReportHandler) CustomerOrderHistory(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	rows, err := h.reports.CustomerOrderHistory(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// BookRatingSummaries 图书评分汇总
// @Summary      图书评分汇总(平均分降序,评价数降序)
// @Tags         报表模块
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /reports/ratings [get]
func (h *ReportHandler) BookRatingSummaries(c *gin.Context) {
	rows, err := h.reports.BookRatingSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}

// InventoryStatus 库存状态报表
// @Summary      库存状态报表(库存升序)
// @Tags         报表模块
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /reports/inventory [get]
func (h *ReportHandler) InventoryStatus(c *gin.Context) {
	rows, err := h.reports.InventoryStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rows)
}
