package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookshop/internal/application/review"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ReviewHandler 评价HTTP处理器
type ReviewHandler struct {
	addReview   *appreview.AddReviewUseCase
	listReviews *appreview.ListBookReviewsUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(
	addReview *appreview.AddReviewUseCase,
	listReviews *appreview.ListBookReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		addReview:   addReview,
		listReviews: listReviews,
	}
}

// AddReview 新增评价
// @Summary      新增评价
// @Description  评分范围[1,5],同一客户对同一本书只能评价一次
// @Tags         评价模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body appreview.AddReviewRequest true "评价内容"
// @Success      200 {object} response.Response{data=appreview.AddReviewResponse}
// @Failure      409 {object} response.Response "重复评价或评分越界"
// @Router       /books/{id}/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req appreview.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.BookID = bookID
	req.CustomerID = middleware.MustGetCustomerID(c)

	result, err := h.addReview.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBookReviews 图书评价列表
// @Summary      图书评价列表
// @Tags         评价模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=[]appreview.ReviewView}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	views, err := h.listReviews.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}
