package services

import (
	"crypto/sha256"
	"fmt"
)

func ComputeHash(v interface{}) string {
	data := fmt.Sprintf("%+v", v)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePage clamps paging input to the served range.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
