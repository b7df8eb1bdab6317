package collector

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// 越南时间，页面上的日期都按本地时间书写
var locVN *time.Location

func init() {
	locVN, _ = time.LoadLocation("Asia/Ho_Chi_Minh")
	if locVN == nil {
		locVN = time.FixedZone("ICT", 7*3600)
	}
}

var (
	reWeekday = regexp.MustCompile(`(?i)^\s*(thứ\s+[\p{L}\d]+|chủ\s+nhật)\s*,?\s*`)
	reGMT     = regexp.MustCompile(`\(?\s*GMT\s*[+-]\s*\d{1,2}(:?\d{2})?\s*\)?`)
	reDMY     = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	reClock   = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\s*([AaPp][Mm]))?`)
)

// parseDMY 解析日/月/年格式，时间可有可无、可在日期前后，支持 AM/PM。
// 会先去掉 "Thứ hai," 之类的星期前缀与 "(GMT+7)"。解析失败返回 news.UnknownPublishedAt。
//
//	"Thứ hai, 29/12/2025, 15:50 (GMT+7)"
//	"Thứ Hai, 16:54, 29/12/2025"
//	"29-12-2025 - 15:50"
//	"31/12/2025 9:05 PM"
func parseDMY(text string) int64 {
	s := reWeekday.ReplaceAllString(strings.TrimSpace(text), "")
	s = reGMT.ReplaceAllString(s, " ")

	d := reDMY.FindStringSubmatch(s)
	if d == nil {
		return news.UnknownPublishedAt
	}
	day, _ := strconv.Atoi(d[1])
	month, _ := strconv.Atoi(d[2])
	year, _ := strconv.Atoi(d[3])

	hour, minute, sec := 0, 0, 0
	if c := reClock.FindStringSubmatch(s); c != nil {
		hour, _ = strconv.Atoi(c[1])
		minute, _ = strconv.Atoi(c[2])
		if c[3] != "" {
			sec, _ = strconv.Atoi(c[3])
		}
		switch strings.ToUpper(c[4]) {
		case "PM":
			if hour < 12 {
				hour += 12
			}
		case "AM":
			if hour == 12 {
				hour = 0
			}
		}
	}
	return unixOrUnknown(year, month, day, hour, minute, sec)
}

func unixOrUnknown(year, month, day, hour, minute, sec int) int64 {
	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || minute > 59 || sec > 59 || year < 1970 {
		return news.UnknownPublishedAt
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, locVN)
	// 31/02 之类会被 time.Date 顺延，视为非法
	if t.Day() != day {
		return news.UnknownPublishedAt
	}
	return t.Unix()
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04-07:00",
	"2006-01-02 15:04:05-07:00",
}

var isoLocalLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO 解析 ISO-8601；无时区时按越南时间
func parseISO(text string) int64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return news.UnknownPublishedAt
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	for _, layout := range isoLocalLayouts {
		if t, err := time.ParseInLocation(layout, s, locVN); err == nil {
			return t.Unix()
		}
	}
	return news.UnknownPublishedAt
}

// parseUnix 解析秒级或毫秒级时间戳
func parseUnix(text string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || v <= 0 {
		return news.UnknownPublishedAt
	}
	if v > 1e12 {
		v /= 1000
	}
	return v
}

// firstKnown 返回第一个有效时间
func firstKnown(ts ...int64) int64 {
	for _, t := range ts {
		if t != news.UnknownPublishedAt {
			return t
		}
	}
	return news.UnknownPublishedAt
}

func timeUnix(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return news.UnknownPublishedAt
	}
	return t.Unix()
}
