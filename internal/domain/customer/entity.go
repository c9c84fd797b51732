package customer

import (
	"time"
)

// Customer 客户实体（聚合根）
// 设计说明：
// 1. PasswordHash存储bcrypt哈希值，不暴露明文
// 2. Email为业务唯一标识（数据库层保证唯一性）
// 3. 删除客户时级联删除其订单与评价
type Customer struct {
	ID           uint
	Email        string
	PasswordHash string // bcrypt哈希值
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	Country      string
	RegisteredAt time.Time
	LastLoginAt  *time.Time // 从未登录为nil
	UpdatedAt    time.Time
}

// NewCustomer 创建新客户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewCustomer(email, hashedPassword, firstName, lastName, phone, address, city, country string) *Customer {
	now := time.Now()
	return &Customer{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Address:      address,
		City:         city,
		Country:      country,
		RegisteredAt: now,
		UpdatedAt:    now,
	}
}

// FullName 客户全名
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// TouchLogin 记录本次登录时间（领域行为）
func (c *Customer) TouchLogin() {
	now := time.Now()
	c.LastLoginAt = &now
	c.UpdatedAt = now
}

// UpdateContact 更新联系信息（空值表示不修改）
func (c *Customer) UpdateContact(phone, address, city, country string) {
	if phone != "" {
		c.Phone = phone
	}
	if address != "" {
		c.Address = address
	}
	if city != "" {
		c.City = city
	}
	if country != "" {
		c.Country = country
	}
	c.UpdatedAt = time.Now()
}
