package public

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// paramUint 解析路径参数为 uint，失败返回 0。
func paramUint(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// queryUint 解析查询参数为 uint，缺省或非法返回 0。
func queryUint(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// queryInt 解析查询参数为 int，缺省或非法返回默认值。
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// contextUserID 读取中间件写入的身份；未登录请求由路由层回落到游客用户。
func contextUserID(c *gin.Context) uint {
	if raw, ok := c.Get("user_id"); ok {
		if id, ok := raw.(uint); ok {
			return id
		}
	}
	return 0
}

// resolveUserID 优先使用路径参数里的用户 ID，其次取中间件身份。
func resolveUserID(c *gin.Context, paramName string) uint {
	if id := paramUint(c, paramName); id != 0 {
		return id
	}
	return contextUserID(c)
}
