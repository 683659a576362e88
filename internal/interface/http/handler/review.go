package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookreview/internal/application/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	addUseCase  *appreview.AddReviewUseCase
	listUseCase *appreview.ListMyReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(addUseCase *appreview.AddReviewUseCase, listUseCase *appreview.ListMyReviewsUseCase) *ReviewHandler {
	return &ReviewHandler{
		addUseCase:  addUseCase,
		listUseCase: listUseCase,
	}
}

// AddReview 提交书评
// 路由挂在OptionalAuth下：未登录时由领域服务返回"请先登录"，与原有行为一致
// @Summary      提交书评
// @Description  书评只追加，同一用户可以对同一本书多次提交
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "图书ID"
// @Param        request body dto.AddReviewRequest true "书评内容"
// @Success      200 {object} response.Response{data=dto.AddReviewResponse} "提交成功"
// @Failure      200 {object} response.Response "未登录、图书不存在或评分超出范围"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailure(c, err)
		return
	}

	result, err := h.addUseCase.Execute(c.Request.Context(), appreview.AddReviewRequest{
		BookID:   bookID,
		Rating:   req.Rating,
		Text:     req.Review,
		Username: middleware.GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.AddReviewResponse{
		ID:        result.ID,
		BookID:    result.BookID,
		Text:      result.Text,
		Rating:    result.Rating,
		CreatedOn: result.CreatedOn,
	})
}

// MyReviews 当前用户对一本书的书评历史
// @Summary      我的书评
// @Description  按提交顺序返回当前用户对这本书的全部书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.MyReviewsResponse} "查询成功"
// @Router       /api/v1/books/{id}/reviews/mine [get]
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), bookID, middleware.GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.ReviewItem, 0, len(result.Reviews))
	for _, v := range result.Reviews {
		list = append(list, toReviewItem(v))
	}

	response.Success(c, &dto.MyReviewsResponse{
		BookID: result.BookID,
		List:   list,
		Count:  result.Count,
	})
}
