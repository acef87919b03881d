// Package validator は入力値の形式チェックをまとめる。DBは見ない。
package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

// パスワード最低文字数
const MinPasswordLength = 12

var dniPattern = regexp.MustCompile(`^[0-9]{8}$`)

// DNIは8桁の数字
func IsDNI(dni string) bool {
	return dniPattern.MatchString(dni)
}

// メールチェック
func IsEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return false
	}
	//"名前 <a@b>" の形は受け付けない
	return addr.Address == trimmed
}

// よくある弱いパスワード
func IsWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))
	_, ok := weakPasswords[normalized]
	return ok
}

var weakPasswords = map[string]struct{}{
	"password":      {},
	"password123":   {},
	"password1234":  {},
	"123456789012":  {},
	"1234567890":    {},
	"12345678":      {},
	"qwerty":        {},
	"qwertyuiop":    {},
	"qwertyuiop12":  {},
	"letmein":       {},
	"admin":         {},
	"admin123":      {},
	"administrador": {},
	"contrasena123": {},
}
