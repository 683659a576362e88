package user

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialScheme 凭证方案
// plain：原文存储、原文比较（默认，与已有数据兼容）
// bcrypt：加盐哈希（可选升级，已有的原文凭证会登录失败）
type CredentialScheme interface {
	// Name 方案名称（plain | bcrypt）
	Name() string

	// Hash 把明文转换为存储形式
	Hash(password string) (string, error)

	// Matches 判断明文是否与存储值匹配
	Matches(stored, password string) bool
}

// PlainScheme 原文方案
type PlainScheme struct{}

// NewPlainScheme 创建原文方案
func NewPlainScheme() PlainScheme {
	return PlainScheme{}
}

func (PlainScheme) Name() string { return "plain" }

func (PlainScheme) Hash(password string) (string, error) {
	return password, nil
}

func (PlainScheme) Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptScheme bcrypt方案
type BcryptScheme struct {
	cost int
}

// NewBcryptScheme 创建bcrypt方案
// cost超出bcrypt允许范围时使用bcrypt.DefaultCost
func NewBcryptScheme(cost int) BcryptScheme {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptScheme{cost: cost}
}

func (BcryptScheme) Name() string { return "bcrypt" }

func (s BcryptScheme) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptScheme) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
