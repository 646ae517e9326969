package public

import (
	"errors"

	"github.com/agro-saffron/storefront/internal/http/response"
	"github.com/agro-saffron/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var serviceErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "resource not found"},
	{target: service.ErrProductUnavailable, code: response.CodeUnprocessable, msg: "product unavailable"},
}

// respondServiceError 把业务错误映射为响应，未知错误走 fallback 并记录日志。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackMsg, err)
}
