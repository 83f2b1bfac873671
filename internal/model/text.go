package model

import "strings"

// ContainsNUL はvに含まれる文字列（マップのキーとネストした値を含む）に
// NUL文字があるかを返す。PostgreSQLのtext/jsonbはNULを格納できない。
func ContainsNUL(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.ContainsRune(t, 0)
	case map[string]any:
		for k, e := range t {
			if strings.ContainsRune(k, 0) || ContainsNUL(e) {
				return true
			}
		}
	case []any:
		for _, e := range t {
			if ContainsNUL(e) {
				return true
			}
		}
	}
	return false
}
