package geo

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/clickpath/internal/config"
	"github.com/clickpath/internal/logger"

	"github.com/oschwald/geoip2-golang"
	"github.com/pariz/gountries"
)

// ErrLookupUnavailable 未加载 GeoIP 数据库
var ErrLookupUnavailable = errors.New("geoip lookup unavailable")

var (
	countriesOnce  sync.Once
	countriesQuery *gountries.Query
)

func countries() *gountries.Query {
	countriesOnce.Do(func() {
		countriesQuery = gountries.New()
	})
	return countriesQuery
}

// Resolver IP 国家解析器
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver 创建解析器
// 未启用或数据库文件不存在时返回不可查询的解析器，GeoIP 为可选能力。
func NewResolver(cfg config.GeoIPConfig) (*Resolver, error) {
	if !cfg.Enabled {
		return &Resolver{}, nil
	}
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return &Resolver{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Warnw("geoip_db_not_found", "path", path)
			return &Resolver{}, nil
		}
		return nil, fmt.Errorf("stat geoip db failed: %w", err)
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db failed: %w", err)
	}
	logger.Infow("geoip_db_loaded", "path", path)
	return &Resolver{reader: reader}, nil
}

// Available 是否可查询
func (r *Resolver) Available() bool {
	return r != nil && r.reader != nil
}

// LookupCountry 查询 IP 所属国家（ISO alpha-2，大写），未知返回空字符串
func (r *Resolver) LookupCountry(ip string) (string, error) {
	if !r.Available() {
		return "", ErrLookupUnavailable
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", fmt.Errorf("invalid ip address: %s", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", err
	}
	code := record.Country.IsoCode
	if code == "" || code == "--" {
		return "", nil
	}
	return NormalizeCountryCode(code), nil
}

// Close 关闭数据库
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

// NormalizeCountryCode 校验并归一化国家代码
// 支持 alpha-2 与 alpha-3 输入，统一输出大写 alpha-2；无法识别返回空字符串。
func NormalizeCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if len(trimmed) != 2 && len(trimmed) != 3 {
		return ""
	}
	country, err := countries().FindCountryByAlpha(trimmed)
	if err != nil {
		return ""
	}
	return strings.ToUpper(country.Codes.Alpha2)
}

// CountryName 返回国家通用英文名，无法识别时返回代码本身
func CountryName(code string) string {
	country, err := countries().FindCountryByAlpha(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return code
	}
	return country.Name.Common
}
