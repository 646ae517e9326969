package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "storefront_session"

// CookieOptions 会话 Cookie 配置
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

// Middleware 读取会话 Cookie，没有则签发新令牌，并把会话视图挂到请求上下文
func Middleware(store Store, options CookieOptions) gin.HandlerFunc {
	cookieName := strings.TrimSpace(options.Name)
	if cookieName == "" {
		cookieName = "storefront_session"
	}
	cookiePath := options.Path
	if cookiePath == "" {
		cookiePath = "/"
	}
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			token = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			// maxAge=0 签发会话级 Cookie，生存期随浏览器会话
			c.SetCookie(cookieName, token, 0, cookiePath, "", options.Secure, true)
		}
		c.Set(contextKey, New(token, store))
		c.Next()
	}
}

// FromContext 获取当前请求的会话视图
func FromContext(c *gin.Context) *Session {
	value, exists := c.Get(contextKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil
	}
	return sess
}
