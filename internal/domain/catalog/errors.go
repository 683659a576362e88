package catalog

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 图书目录领域错误定义
var (
	// ErrBookNotFound 按ID查询未命中
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrISBNNotFound 按ISBN查询未命中（对外接口直接使用这个提示）
	ErrISBNNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book with given isbn not found in the database.")

	// ErrInvalidCriteria 搜索条件不是title/isbn/author之一
	ErrInvalidCriteria = apperrors.New(apperrors.ErrCodeInvalidCriteria, "Unsupported search criteria.")

	// ErrStoreFailure 目录查询时存储层故障
	ErrStoreFailure = apperrors.New(apperrors.ErrCodeDatabaseError, "The catalog is unavailable at this time. Please try again.")
)
