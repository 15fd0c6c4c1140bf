package utility

import (
	"time"
)

// CurrentTimeInMilli trả về thời gian hiện tại dạng Unix milliseconds
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
