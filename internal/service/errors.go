package service

import "errors"

// 业务错误定义，handler 层通过 errors.Is 映射为响应码
var (
	// ErrInvalidInput 入参不合法
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrProductUnavailable 商品不存在、已下架或无库存
	ErrProductUnavailable = errors.New("product unavailable")
)
