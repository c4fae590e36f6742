package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

// ProductHandler 商品浏览/搜索接口，数据全部来自远端 DummyJSON
type ProductHandler struct {
	API      *dummyjson.Client
	PageSize int
}

func NewProductHandler(api *dummyjson.Client, pageSize int) *ProductHandler {
	if pageSize <= 0 {
		pageSize = 30
	}
	return &ProductHandler{API: api, PageSize: pageSize}
}

// List 分页商品列表（limit/skip 透传给远端）
func (h *ProductHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if limit <= 0 {
		limit = h.PageSize
	}
	if skip < 0 {
		skip = 0
	}

	page, err := h.API.ListProducts(c.Request.Context(), limit, skip)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to fetch products"))
		return
	}

	util.Success(c, util.Response{
		"products": page.Products,
		"total":    page.Total,
		"skip":     page.Skip,
		"limit":    page.Limit,
	})
}

// Get 单个商品详情
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid product id")
		return
	}

	product, err := h.API.GetProduct(c.Request.Context(), id)
	if err != nil {
		var apiErr *dummyjson.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Product not found")
			return
		}
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Failed to fetch product"))
		return
	}

	util.Success(c, util.Response{
		"product": product,
	})
}

// Search 全文搜索
func (h *ProductHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Search query is required")
		return
	}

	page, err := h.API.SearchProducts(c.Request.Context(), query)
	if err != nil {
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, upstreamMessage(err, "Search failed"))
		return
	}

	util.Success(c, util.Response{
		"products": page.Products,
		"total":    page.Total,
	})
}

// upstreamMessage 优先透出远端的 message，取不到用兜底文案
func upstreamMessage(err error, fallback string) string {
	var apiErr *dummyjson.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
