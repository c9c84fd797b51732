package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookshop/internal/application/catalog"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CatalogHandler 目录HTTP处理器
// 图书/出版社/作者/分类的维护与搜索
type CatalogHandler struct {
	createBook  *appcatalog.CreateBookUseCase
	deleteBook  *appcatalog.DeleteBookUseCase
	searchBooks *appcatalog.SearchBooksUseCase
	manage      *appcatalog.ManageCatalogUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(
	createBook *appcatalog.CreateBookUseCase,
	deleteBook *appcatalog.DeleteBookUseCase,
	searchBooks *appcatalog.SearchBooksUseCase,
	manage *appcatalog.ManageCatalogUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		createBook:  createBook,
		deleteBook:  deleteBook,
		searchBooks: searchBooks,
		manage:      manage,
	}
}

// CreateBook 图书上架
// @Summary      图书上架
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appcatalog.CreateBookResponse}
// @Failure      409 {object} response.Response "ISBN重复或校验失败"
// @Router       /books [post]
func (h *CatalogHandler) CreateBook(c *gin.Context) {
	var req appcatalog.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *CatalogHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.manage.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// UpdateBook 更新图书
// @Summary      更新图书信息
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body appcatalog.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Router       /books/{id} [put]
func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	b, err := h.manage.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// DeleteBook 图书删除
// @Summary      图书删除
// @Description  被在途订单引用的图书禁止删除;级联清理作者关联与评价
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "图书被在途订单引用"
// @Router       /books/{id} [delete]
func (h *CatalogHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBook.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SearchBooks 图书搜索
// @Summary      图书搜索
// @Description  书名/作者名模糊匹配,分类与价格区间过滤,多条件AND,按书名升序
// @Tags         目录模块
// @Produce      json
// @Param        title query string false "书名关键词"
// @Param        author query string false "作者名关键词"
// @Param        category_id query int false "分类ID"
// @Param        min_price_cents query int false "最低价(分)"
// @Param        max_price_cents query int false "最高价(分)"
// @Success      200 {object} response.Response{data=[]appcatalog.BookView}
// @Router       /books [get]
func (h *CatalogHandler) SearchBooks(c *gin.Context) {
	var req appcatalog.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	views, err := h.searchBooks.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, views)
}

// ========== 出版社 ==========

// CreatePublisher 创建出版社
// @Summary      创建出版社
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreatePublisherRequest true "出版社信息"
// @Success      200 {object} response.Response
// @Router       /publishers [post]
func (h *CatalogHandler) CreatePublisher(c *gin.Context) {
	var req appcatalog.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	p, err := h.manage.CreatePublisher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// GetPublisher 出版社详情
// @Summary      出版社详情
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /publishers/{id} [get]
func (h *CatalogHandler) GetPublisher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := h.manage.GetPublisher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// UpdatePublisher 更新出版社
// @Summary      更新出版社
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        id path int true "出版社ID"
// @Param        request body appcatalog.CreatePublisherRequest true "出版社信息"
// @Success      200 {object} response.Response
// @Router       /publishers/{id} [put]
func (h *CatalogHandler) UpdatePublisher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	p, err := h.manage.UpdatePublisher(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePublisher 删除出版社
// @Summary      删除出版社
// @Description  引用该出版社的图书publisher_id置空,图书保留
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /publishers/{id} [delete]
func (h *CatalogHandler) DeletePublisher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manage.DeletePublisher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPublishers 出版社列表
// @Summary      出版社列表
// @Tags         目录模块
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /publishers [get]
func (h *CatalogHandler) ListPublishers(c *gin.Context) {
	publishers, err := h.manage.ListPublishers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, publishers)
}

// ========== 作者 ==========

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateAuthorRequest true "作者信息"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "作者重复(姓名+出生日期)"
// @Router       /authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req appcatalog.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	a, err := h.manage.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, a)
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	a, err := h.manage.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, a)
}

// UpdateAuthor 更新作者
// @Summary      更新作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        id path int true "作者ID"
// @Param        request body appcatalog.CreateAuthorRequest true "作者信息"
// @Success      200 {object} response.Response
// @Router       /authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	a, err := h.manage.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, a)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  作者的图书关联级联删除,图书本身保留
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manage.DeleteAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         目录模块
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	authors, err := h.manage.ListAuthors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, authors)
}

// AssignAuthor 建立图书作者关联
// @Summary      图书关联作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.AssignAuthorRequest true "关联信息"
// @Success      200 {object} response.Response
// @Router       /book-authors [post]
func (h *CatalogHandler) AssignAuthor(c *gin.Context) {
	var req appcatalog.AssignAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manage.AssignAuthor(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UnassignAuthor 解除图书作者关联
// @Summary      解除图书作者关联
// @Tags         目录模块
// @Produce      json
// @Param        book_id path int true "图书ID"
// @Param        author_id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /book-authors/{book_id}/{author_id} [delete]
func (h *CatalogHandler) UnassignAuthor(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.Param("book_id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "图书ID格式错误")
		return
	}
	authorID, err := strconv.ParseUint(c.Param("author_id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "作者ID格式错误")
		return
	}

	if err := h.manage.UnassignAuthor(c.Request.Context(), uint(bookID), uint(authorID)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ========== 分类 ==========

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "分类名重复"
// @Router       /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	cat, err := h.manage.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cat)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cat, err := h.manage.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cat)
}

// moveCategoryRequest 调整分类父节点请求
type moveCategoryRequest struct {
	ParentID *uint `json:"parent_id"`
}

// MoveCategory 调整分类父节点
// @Summary      调整分类父节点
// @Description  父链成环时拒绝
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID"
// @Param        request body moveCategoryRequest true "新父分类"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "父链成环"
// @Router       /categories/{id}/parent [put]
func (h *CatalogHandler) MoveCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req moveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manage.MoveCategory(c.Request.Context(), id, req.ParentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  子分类与引用图书的关联置空,不级联删除
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.manage.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         目录模块
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.manage.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "ID格式错误")
		return 0, false
	}
	return uint(id), true
}
