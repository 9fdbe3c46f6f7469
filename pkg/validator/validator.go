package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/haierkeys/bitshared-cli/pkg/code"
)

// Validator 请求参数校验器，错误信息按配置语言翻译
type Validator struct {
	validate *validatorV10.Validate
	trans    ut.Translator
}

// New builds a validator whose messages use lang ("en" or "zh_cn").
// New 创建校验器，lang 为 en 或 zh_cn
func New(lang string) (*Validator, error) {
	validate := validatorV10.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, err
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, err
	}

	trans := enTran
	if lang == code.LangZH {
		trans = zhTran
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct 校验结构体，失败时返回带翻译详情的 ErrorInvalidParams
func (v *Validator) Struct(obj any) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		return code.ErrorInvalidParams.WithDetails(err.Error())
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fe.Translate(v.trans))
	}
	return code.ErrorInvalidParams.WithDetails(details...)
}
