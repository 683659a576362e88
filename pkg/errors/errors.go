package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息（注册/登录页面直接展示）
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露数据库细节）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 说明：WithCause会复制一份AppError，复制后的错误仍然要能匹配预定义错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithCause 基于预定义错误附加内部原因
// 用途：ErrStoreFailure这类通用错误需要携带真实的数据库错误，供日志使用
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapStore 包装存储层错误（连接失败、约束冲突等）
// 调用方只能看到"存储失败"，真实原因保留在Err中
func WrapStore(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 用户名或密码错误

	// 资源错误（40400-40499）
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeReviewNotFound = 40405 // 书评不存在

	// 业务规则错误（40000-40099）
	ErrCodeUsernameDuplicate = 40003 // 用户名已存在
	ErrCodeWeakPassword      = 40005 // 密码长度不足
	ErrCodeUsernameTooShort  = 40006 // 用户名长度不足
	ErrCodePasswordMismatch  = 40007 // 两次密码不一致
	ErrCodeInvalidRating     = 40008 // 评分超出范围

	// 参数错误（40900-40999）
	ErrCodeInvalidParams   = 40900 // 参数错误
	ErrCodeInvalidCriteria = 40902 // 搜索条件不支持
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Something went wrong. Please try again.")
	ErrDatabaseError = New(ErrCodeDatabaseError, "The store is unavailable at this time. Please try again.")
	ErrRedisError    = New(ErrCodeRedisError, "The cache service is unavailable.")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Please log in first.")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid session token.")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Session expired, please log in again.")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters.")
)

// =========================================
// 错误分类
// =========================================

// Kind 错误类别
// 说明：写操作不再只返回true/false，调用方可以区分"未找到"、"校验失败"和"存储故障"
type Kind int

const (
	KindNone         Kind = iota // 没有错误
	KindNotFound                 // 查询未命中（读操作的显式空结果）
	KindValidation               // 输入不满足长度/一致性/唯一性规则
	KindUnauthorized             // 未登录或凭证无效
	KindStoreFailure             // 存储层故障（连接、约束冲突）
	KindInternal                 // 其他内部错误
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "internal"
	}
}

// KindOf 根据错误码推导错误类别
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return KindInternal
	}

	switch code := appErr.Code; {
	case code >= 40400 && code < 40500:
		return KindNotFound
	case code >= 40100 && code < 40200:
		return KindUnauthorized
	case code >= 40000 && code < 40100, code >= 40900 && code < 41000:
		return KindValidation
	case code == ErrCodeDatabaseError:
		return KindStoreFailure
	default:
		return KindInternal
	}
}

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
