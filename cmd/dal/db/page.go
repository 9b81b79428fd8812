package db

import "math"

// PageOffset 返回(page-1)*pageSize 溢出或参数非法时ok为false
func PageOffset(page, pageSize int) (int, bool) {
	if page < 1 || pageSize < 1 {
		return 0, false
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}
