package user

import (
	"unicode/utf8"
)

// 长度规则（按字符计数，与注册/登录页面的提示一致）
const (
	MinUsernameLength = 4 // 用户名至少4个字符
	MinPasswordLength = 7 // 密码至少7个字符
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. Username唯一，由数据库唯一索引保证
// 2. Hash是凭证的存储形式，具体格式由CredentialScheme决定（plain时就是原文）
// 3. 领域实体不依赖GORM tag
type User struct {
	ID       uint
	Username string
	Hash     string
}

// NewUser 创建新用户（工厂方法）
// hash必须已经由CredentialScheme处理过
func NewUser(username, hash string) *User {
	return &User{
		Username: username,
		Hash:     hash,
	}
}

// IsSessionValid 会话有效性检查
// 只检查缓存的用户名是否存在且长度>=4，不访问数据库，也发现不了登录后被删除的用户
func IsSessionValid(sessionUsername string) bool {
	return sessionUsername != "" && usernameLongEnough(sessionUsername)
}

// validateSignupLengths 注册的长度规则
// 密码规则先于用户名规则，两者都不满足时报告密码过短
func validateSignupLengths(username, password string) error {
	if !passwordLongEnough(password) {
		return ErrPasswordTooShort
	}
	if !usernameLongEnough(username) {
		return ErrUsernameTooShort
	}
	return nil
}

// validateLoginLengths 登录的长度规则
// 与登录页面一致，先检查用户名
func validateLoginLengths(username, password string) error {
	if !usernameLongEnough(username) {
		return ErrUsernameTooShort
	}
	if !passwordLongEnough(password) {
		return ErrPasswordTooShort
	}
	return nil
}

func usernameLongEnough(username string) bool {
	return utf8.RuneCountInString(username) >= MinUsernameLength
}

func passwordLongEnough(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}
