package code

import (
	"errors"
	"fmt"
)

// lang stores the English and Chinese text of a message
// lang 用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const (
	LangEN = "en"
	LangZH = "zh_cn"

	FALLBACK_LNG = LangEN
)

// Default language is English // 默认语言为英文
var lng = LangEN

// GetMessage returns the message in the current global language,
// falling back to English when the translation is empty.
// GetMessage 根据全局语言返回相应的消息，缺失时回退到英文
func (l lang) GetMessage() string {
	return l.In(lng)
}

// In returns the message for the given language
// In 返回指定语言的消息
func (l lang) In(language string) string {
	var msg string
	switch language {
	case LangZH:
		msg = l.zh_cn
	default:
		msg = l.en
	}
	if msg != "" {
		return msg
	}
	if l.en != "" {
		return l.en
	}
	return fmt.Sprintf("No message available for language: %s", language)
}

// GetSupportedLanguages returns all supported languages
// GetSupportedLanguages 返回支持的所有语言
func GetSupportedLanguages() []string {
	return []string{LangEN, LangZH}
}

// SetGlobalDefaultLang sets the global default language.
// An unsupported language resets it to English and returns an error.
// 设置全局默认语言，不支持的语言会回退到英文并返回错误
func SetGlobalDefaultLang(language string) error {
	for _, l := range GetSupportedLanguages() {
		if language == l {
			lng = language
			return nil
		}
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang gets the global default language
// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
