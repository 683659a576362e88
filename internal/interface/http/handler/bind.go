package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/response"
)

// bindFailure 把参数绑定错误写成统一响应
// 评分字段的任何校验失败都按领域错误ErrInvalidRating返回，其他字段返回40900和失败的字段列表
func bindFailure(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// JSON格式错误、类型不匹配
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.StructField() == "Rating" {
			response.Error(c, review.ErrInvalidRating)
			return
		}
		fields = append(fields, fe.Field()+"("+fe.Tag()+")")
	}
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+strings.Join(fields, ", "))
}
