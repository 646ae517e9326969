package public

import (
	handlershared "github.com/agro-saffron/storefront/internal/http/handlers/shared"
	"github.com/agro-saffron/storefront/internal/http/response"
	"github.com/agro-saffron/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// currentSession 获取请求会话，缺失时直接响应错误（购物车离不开会话）
func currentSession(c *gin.Context) (*session.Session, bool) {
	sess := session.FromContext(c)
	if sess == nil {
		respondError(c, response.CodeInternal, "session unavailable", nil)
		return nil, false
	}
	return sess, true
}
