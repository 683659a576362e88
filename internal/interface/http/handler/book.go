package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/response"
)

// BookHandler 图书HTTP处理器
// 目录只读：搜索、详情、对外ISBN接口
type BookHandler struct {
	searchUseCase *appcatalog.SearchBooksUseCase
	getUseCase    *appcatalog.GetBookUseCase
	isbnUseCase   *appcatalog.LookupISBNUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	searchUseCase *appcatalog.SearchBooksUseCase,
	getUseCase *appcatalog.GetBookUseCase,
	isbnUseCase *appcatalog.LookupISBNUseCase,
) *BookHandler {
	return &BookHandler{
		searchUseCase: searchUseCase,
		getUseCase:    getUseCase,
		isbnUseCase:   isbnUseCase,
	}
}

// Search 图书搜索
// @Summary      图书搜索
// @Description  按书名/ISBN/作者子串匹配，最多返回20条，不分页
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        query    query string false "查询关键字（为空时匹配全部）"
// @Param        criteria query string true  "搜索条件" Enums(title, isbn, author)
// @Success      200 {object} response.Response{data=dto.SearchBooksResponse} "搜索成功"
// @Failure      200 {object} response.Response "搜索条件不支持"
// @Router       /api/v1/books [get]
func (h *BookHandler) Search(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailure(c, err)
		return
	}

	result, err := h.searchUseCase.Execute(c.Request.Context(), appcatalog.SearchBooksRequest{
		Query:    req.Query,
		Criteria: req.Criteria,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookItem, 0, len(result.Books))
	for _, b := range result.Books {
		list = append(list, toBookItem(b))
	}

	response.Success(c, &dto.SearchBooksResponse{
		Query:    result.Query,
		Criteria: result.Criteria,
		List:     list,
		Count:    result.Count,
	})
}

// Detail 图书详情
// @Summary      图书详情
// @Description  返回图书信息，登录时附带当前用户的第一条书评
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse} "查询成功"
// @Failure      200 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Detail(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), appcatalog.GetBookRequest{
		BookID:   bookID,
		Username: middleware.GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := &dto.BookDetailResponse{Book: toBookItem(result.Book)}
	if result.Review != nil {
		item := toReviewItem(result.Review)
		resp.Review = &item
	}
	response.Success(c, resp)
}

// LookupISBN 对外ISBN查询接口
// 保持原有的返回格式：命中时直接返回{title, author, year, isbn}，未命中返回404和{error}
// @Summary      ISBN查询
// @Description  按ISBN精确查询，供第三方使用
// @Tags         对外接口
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} dto.ISBNLookupResponse
// @Failure      404 {object} dto.ISBNErrorResponse
// @Router       /api/{isbn} [get]
func (h *BookHandler) LookupISBN(c *gin.Context) {
	result, err := h.isbnUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			c.JSON(http.StatusNotFound, dto.ISBNErrorResponse{Error: catalog.ErrISBNNotFound.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ISBNErrorResponse{Error: apperrors.GetAppError(err).Message})
		return
	}

	c.JSON(http.StatusOK, dto.ISBNLookupResponse{
		Title:  result.Title,
		Author: result.Author,
		Year:   result.Year,
		ISBN:   result.ISBN,
	})
}

// parseBookID 解析路径参数:id，失败时已经写好响应
func parseBookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, catalog.ErrBookNotFound)
		return 0, false
	}
	return uint(id), true
}

func toBookItem(b *catalog.BookView) dto.BookItem {
	return dto.BookItem{
		ID:        b.ID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Published: b.Published,
	}
}

func toReviewItem(v *review.ReviewView) dto.ReviewItem {
	return dto.ReviewItem{
		Text:      v.Text,
		Rating:    v.Rating,
		CreatedOn: v.CreatedOn,
	}
}
