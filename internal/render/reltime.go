package render

import (
	"fmt"
	"time"
)

// RelativeTime renders how long ago t was, in Vietnamese.
func RelativeTime(t, now time.Time) string {
	secs := int(now.Sub(t) / time.Second)
	if secs < 60 {
		return "Vừa xong"
	}
	mins := secs / 60
	if mins < 60 {
		return fmt.Sprintf("%d phút trước", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d giờ trước", hours)
	}
	days := hours / 24
	if days < 30 {
		return fmt.Sprintf("%d ngày trước", days)
	}
	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%d tháng trước", months)
	}
	return fmt.Sprintf("%d năm trước", months/12)
}

// RelativeTimeString parses an RFC 3339 timestamp; unparseable input is
// returned as is.
func RelativeTimeString(ts string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return RelativeTime(t, now)
}
