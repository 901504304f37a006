package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// CatalogHandler 编目HTTP处理器(书目与副本维护、公开查询)
type CatalogHandler struct {
	createBookUseCase *appcatalog.CreateBookUseCase
	updateBookUseCase *appcatalog.UpdateBookUseCase
	deleteBookUseCase *appcatalog.DeleteBookUseCase
	queryBooksUseCase *appcatalog.QueryBooksUseCase
	addItemUseCase    *appcatalog.AddItemUseCase
	deleteItemUseCase *appcatalog.DeleteItemUseCase
	importBookUseCase *appcatalog.ImportBookUseCase
}

// NewCatalogHandler 创建编目处理器
func NewCatalogHandler(
	createBookUseCase *appcatalog.CreateBookUseCase,
	updateBookUseCase *appcatalog.UpdateBookUseCase,
	deleteBookUseCase *appcatalog.DeleteBookUseCase,
	queryBooksUseCase *appcatalog.QueryBooksUseCase,
	addItemUseCase *appcatalog.AddItemUseCase,
	deleteItemUseCase *appcatalog.DeleteItemUseCase,
	importBookUseCase *appcatalog.ImportBookUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		queryBooksUseCase: queryBooksUseCase,
		addItemUseCase:    addItemUseCase,
		deleteItemUseCase: deleteItemUseCase,
		importBookUseCase: importBookUseCase,
	}
}

// ListBooks 书目列表(公开)
// @Summary      书目列表
// @Tags         编目
// @Produce      json
// @Param        page query int false "页码(默认1)"
// @Param        page_size query int false "每页大小(默认20)"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	books, total, err := h.queryBooksUseCase.ListBooks(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, books, total, page, pageSize)
}

// GetBook 书目详情(公开)
// @Summary      书目详情
// @Tags         编目
// @Produce      json
// @Param        id path int true "书目ID"
// @Success      200 {object} response.Response{data=appcatalog.BookDetail}
// @Router       /api/v1/books/{id} [get]
func (h *CatalogHandler) GetBook(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.queryBooksUseCase.GetBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListItems 书目的副本清单(公开)
func (h *CatalogHandler) ListItems(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.queryBooksUseCase.ListItems(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBook 新建书目(馆员)
// @Summary      新建书目
// @Tags         编目
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcatalog.CreateBookRequest true "书目信息"
// @Success      200 {object} response.Response{data=appcatalog.CreateBookResponse}
// @Router       /api/v1/books [post]
func (h *CatalogHandler) CreateBook(c *gin.Context) {
	var req appcatalog.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ImportBook 按ISBN从Google Books导入书目(馆员)
func (h *CatalogHandler) ImportBook(c *gin.Context) {
	var req appcatalog.ImportBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.importBookUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBook 更新书目(馆员)
func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req appcatalog.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.BookID = bookID

	if err := h.updateBookUseCase.Execute(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// DeleteBook 删除书目(馆员)
func (h *CatalogHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AddItem 登记馆藏副本(馆员)
// @Summary      登记馆藏副本
// @Tags         编目
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcatalog.AddItemRequest true "副本信息"
// @Success      200 {object} response.Response{data=appcatalog.AddItemResponse}
// @Router       /api/v1/items [post]
func (h *CatalogHandler) AddItem(c *gin.Context) {
	var req appcatalog.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.addItemUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteItem 下架馆藏副本(馆员)
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的barcode参数")
		return
	}

	if err := h.deleteItemUseCase.Execute(c.Request.Context(), barcode); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
