package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验 DTO 上的 validate 标签，错误原样返回交给响应层翻译
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
