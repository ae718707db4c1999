// internal/service/session_calendar.go
package service

import (
	"time"

	"github.com/jinzhu/now"
)

// SessionCalendar は日次セッションの「今日」を決めます。
// 日付の境界は設定されたタイムゾーンの 0 時。
type SessionCalendar struct {
	loc   *time.Location
	clock func() time.Time
}

// NewSessionCalendar は loc の 0 時を日付の境界とするカレンダーを返します。
// clock が nil なら time.Now を使う。
func NewSessionCalendar(loc *time.Location, clock func() time.Time) *SessionCalendar {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &SessionCalendar{loc: loc, clock: clock}
}

// Now は現在時刻を設定タイムゾーンで返します。
func (c *SessionCalendar) Now() time.Time {
	return c.clock().In(c.loc)
}

// Today は今日の範囲 [start, end) を返します。
func (c *SessionCalendar) Today() (start, end time.Time) {
	start = now.With(c.Now()).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}
