package customer

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LoginUseCase 客户登录用例
// 设计说明:
// 1. 验证邮箱密码(领域服务,内部会更新LastLoginAt)
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	customerSvc  customer.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	customerSvc customer.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		customerSvc:  customerSvc,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应DTO
type LoginResponse struct {
	CustomerID   uint   `json:"customer_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码
	c, err := uc.customerSvc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateTokenPair(c.ID, c.Email)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis,有效期与Refresh Token一致
	// 会话保存失败不影响登录(未接入Redis时为nil)
	if uc.sessionStore != nil {
		sessionData := map[string]interface{}{
			"customer_id": c.ID,
			"email":       c.Email,
			"login_at":    time.Now().Unix(),
		}
		_ = uc.sessionStore.SaveSession(ctx, c.ID, sessionData, 7*24*time.Hour)
	}

	return &LoginResponse{
		CustomerID:   c.ID,
		Email:        c.Email,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 客户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
// 删除会话并将Access Token加入黑名单,防止过期前继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, customerID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, customerID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}
