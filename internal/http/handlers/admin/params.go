package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"

	"github.com/gin-gonic/gin"
)

var errInvalidTime = errors.New("invalid time")

func parseIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseParamID(c, "id")
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

func pagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// parseTime 支持 RFC3339 与 2006-01-02 两种格式，日期按 UTC 零点解析
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errInvalidTime
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidTime
}

// parseTimeNullable 空字符串返回 nil
func parseTimeNullable(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseBoolQuery(c *gin.Context, name string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && value
}
