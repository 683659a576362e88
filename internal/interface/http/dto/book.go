package dto

import "time"

// SearchBooksRequest 图书搜索请求
// query允许为空：空查询匹配全部图书（最多20条）
type SearchBooksRequest struct {
	Query    string `form:"query" binding:"max=200" example:"Potter"`
	Criteria string `form:"criteria" binding:"required" example:"title"` // title | isbn | author
}

// BookItem 图书列表项/详情
type BookItem struct {
	ID        uint   `json:"id" example:"1"`
	ISBN      string `json:"isbn" example:"0380795272"`
	Title     string `json:"title" example:"Krondor: The Betrayal"`
	Author    string `json:"author" example:"Raymond E. Feist"`
	Published int    `json:"published" example:"1998"`
}

// SearchBooksResponse 图书搜索响应
type SearchBooksResponse struct {
	Query    string     `json:"query" example:"Potter"`
	Criteria string     `json:"criteria" example:"title"`
	List     []BookItem `json:"list"`
	Count    int        `json:"count" example:"3"`
}

// ReviewItem 书评展示
// Rating是百分比（3分 → 60）
type ReviewItem struct {
	Text      string    `json:"text" example:"Great read"`
	Rating    int       `json:"rating" example:"80"`
	CreatedOn time.Time `json:"created_on"`
}

// BookDetailResponse 图书详情响应
// Review是当前用户的第一条书评，没有时为null
type BookDetailResponse struct {
	Book   BookItem    `json:"book"`
	Review *ReviewItem `json:"review"`
}

// AddReviewRequest 提交书评请求
type AddReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5" example:"4"`
	Review string `json:"review" binding:"max=5000" example:"Great read"`
}

// AddReviewResponse 提交书评响应
type AddReviewResponse struct {
	ID        uint      `json:"id" example:"1"`
	BookID    uint      `json:"book_id" example:"1"`
	Text      string    `json:"text" example:"Great read"`
	Rating    int       `json:"rating" example:"80"`
	CreatedOn time.Time `json:"created_on"`
}

// MyReviewsResponse 当前用户对一本书的书评历史（按提交顺序）
type MyReviewsResponse struct {
	BookID uint         `json:"book_id" example:"1"`
	List   []ReviewItem `json:"list"`
	Count  int          `json:"count" example:"2"`
}

// ISBNLookupResponse 对外ISBN接口（不经过统一响应包装）
type ISBNLookupResponse struct {
	Title  string `json:"title" example:"Krondor: The Betrayal"`
	Author string `json:"author" example:"Raymond E. Feist"`
	Year   int    `json:"year" example:"1998"`
	ISBN   string `json:"isbn" example:"0380795272"`
}

// ISBNErrorResponse 对外ISBN接口的错误体
type ISBNErrorResponse struct {
	Error string `json:"error" example:"Book with given isbn not found in the database."`
}
