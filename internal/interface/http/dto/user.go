package dto

// RegisterRequest HTTP层注册请求
// 说明：binding只校验必填，长度规则由认证关口给出原有的提示信息
type RegisterRequest struct {
	Username        string `json:"username" binding:"required" example:"alice"`
	Password        string `json:"password" binding:"required" example:"wonderland"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"wonderland"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"wonderland"`
}

// RefreshRequest 刷新Access Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo 用户信息（不包含凭证）
type UserInfo struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
}

// LoginResponse 注册/登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in" example:"7200"` // Access Token过期时间（秒）
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"7200"`
}
