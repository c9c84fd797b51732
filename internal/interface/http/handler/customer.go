package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	register *appcustomer.RegisterUseCase
	login    *appcustomer.LoginUseCase
	logout   *appcustomer.LogoutUseCase
	manage   *appcustomer.ManageCustomerUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(
	register *appcustomer.RegisterUseCase,
	login *appcustomer.LoginUseCase,
	logout *appcustomer.LogoutUseCase,
	manage *appcustomer.ManageCustomerUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		register: register,
		login:    login,
		logout:   logout,
		manage:   manage,
	}
}

// Register 客户注册
// @Summary      客户注册
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Param        request body appcustomer.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=appcustomer.RegisterResponse}
// @Failure      409 {object} response.Response "邮箱已注册"
// @Router       /customers/register [post]
func (h *CustomerHandler) Register(c *gin.Context) {
	var req appcustomer.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Login 客户登录
// @Summary      客户登录
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Param        request body appcustomer.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appcustomer.LoginResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /customers/login [post]
func (h *CustomerHandler) Login(c *gin.Context) {
	var req appcustomer.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.login.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 客户登出
// @Summary      客户登出
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /customers/logout [post]
func (h *CustomerHandler) Logout(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	// 从Header提取当前Token加入黑名单
	token := ""
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 {
			token = parts[1]
		}
	}

	if err := h.logout.Execute(c.Request.Context(), customerID, token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetProfile 查询当前客户资料
// @Summary      查询当前客户资料
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcustomer.CustomerProfile}
// @Router       /customers/me [get]
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	profile, err := h.manage.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新当前客户资料
// @Summary      更新当前客户资料
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcustomer.UpdateCustomerRequest true "资料"
// @Success      200 {object} response.Response{data=appcustomer.CustomerProfile}
// @Router       /customers/me [put]
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	var req appcustomer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	profile, err := h.manage.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// DeleteAccount 注销当前客户
// @Summary      注销当前客户
// @Description  级联删除该客户的全部订单与评价
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /customers/me [delete]
func (h *CustomerHandler) DeleteAccount(c *gin.Context) {
	customerID := middleware.MustGetCustomerID(c)

	if err := h.manage.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
