package model

// User 教职工账号：对应 users（管理员 / 教师）
type User struct {
	BaseModel
	Username        string  `gorm:"type:varchar(64);not null;uniqueIndex:uk_users_username" json:"username"`
	PasswordHash    string  `gorm:"type:varchar(255);not null"                              json:"-"`
	Role            Role    `gorm:"type:varchar(16);not null"                               json:"role"`
	Name            string  `gorm:"type:varchar(100);not null"                              json:"name"`
	AssignedClass   *string `gorm:"type:varchar(50)"                                        json:"assignedClass"`
	AssignedSection *string `gorm:"type:varchar(20)"                                        json:"assignedSection"`
	IsActive        bool    `gorm:"not null"                                                json:"isActive"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
