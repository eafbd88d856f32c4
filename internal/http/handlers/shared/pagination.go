package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination 读取 page 与 page_size 查询参数，非法值回落到默认值
func ParsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(strings.TrimSpace(c.Query("page_size")))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
