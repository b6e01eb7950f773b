// File: internal/api/flexible_int.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleInt 接受 JSON 數字或數字字串，例如 2 或 "2"
// null 與空字串視為 0
type FlexibleInt int

// Int 回傳 int 值
func (f FlexibleInt) Int() int { return int(f) }

// UnmarshalJSON 解析數字或帶引號的數字
func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return f.UnmarshalParam(s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("must be an integer: %w", err)
	}
	*f = FlexibleInt(n)
	return nil
}

// UnmarshalParam 讓 echo 綁定表單與 query 參數
func (f *FlexibleInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		return fmt.Errorf("must be an integer: %q", param)
	}
	*f = FlexibleInt(n)
	return nil
}
