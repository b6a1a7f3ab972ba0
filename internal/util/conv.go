package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseOptionalUint 空字符串返回 nil；非法数字返回 ErrInvalidInput
func ParseOptionalUint(s string) (*uint, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return nil, ErrInvalidInput
	}
	v := uint(id)
	return &v, nil
}
