package customer

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 客户领域服务
// 设计说明：
// 1. 封装不属于单个实体的业务逻辑（密码加密、验证）
// 2. 依赖Repository接口，不依赖具体实现
type Service interface {
	// Register 客户注册
	Register(ctx context.Context, email, password, firstName, lastName, phone, address, city, country string) (*Customer, error)

	// Login 客户登录（验证通过后刷新LastLoginAt）
	Login(ctx context.Context, email, password string) (*Customer, error)

	// ValidatePassword 验证明文密码与哈希值是否匹配
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建客户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 客户注册
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 密码bcrypt加密（cost=12）
// 4. 邮箱唯一性由数据库UNIQUE索引保证（应用层SELECT再INSERT有并发窗口）
func (s *service) Register(ctx context.Context, email, password, firstName, lastName, phone, address, city, country string) (*Customer, error) {
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// bcrypt自动加盐，cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	c := NewCustomer(email, string(hashedPassword), firstName, lastName, phone, address, city, country)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return c, nil
}

// Login 客户登录
func (s *service) Login(ctx context.Context, email, password string) (*Customer, error) {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.ValidatePassword(c.PasswordHash, password); err != nil {
		return nil, err
	}

	// 记录本次登录时间
	c.TouchLogin()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidatePassword 验证密码
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// isValidEmail 邮箱格式校验（简化正则，生产环境可用更严格的RFC 5322）
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
