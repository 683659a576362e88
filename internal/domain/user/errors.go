package user

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 用户领域错误定义（Message直接展示在注册/登录页面）
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "User not found.")

	// ErrUsernameTaken 用户名已存在
	ErrUsernameTaken = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "User already exists with same username.")

	// ErrUsernameTooShort 用户名过短
	ErrUsernameTooShort = apperrors.New(apperrors.ErrCodeUsernameTooShort, "Username should be of minimum 4 characters")

	// ErrPasswordTooShort 密码过短
	ErrPasswordTooShort = apperrors.New(apperrors.ErrCodeWeakPassword, "Password should be of minimum 7 characters")

	// ErrPasswordMismatch 两次输入的密码不一致
	ErrPasswordMismatch = apperrors.New(apperrors.ErrCodePasswordMismatch, "Passwords do not match. please enter passwords again.")

	// ErrInvalidCredentials 用户不存在或密码错误（不区分两者）
	ErrInvalidCredentials = apperrors.New(apperrors.ErrCodeInvalidCredentials, "User does not exists or Invalid Credentials provided.")

	// ErrStoreFailure 注册时存储层故障
	ErrStoreFailure = apperrors.New(apperrors.ErrCodeDatabaseError, "User cannot be created. Some error occured.")
)
