package news

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAppliesSentinels(t *testing.T) {
	a, err := New(Fields{
		Title:           "  Giá vàng   hôm nay ",
		Link:            "https://cafef.vn/gia-vang-188251225205027358.chn",
		Content:         strings.Repeat("nội dung ", 20),
		Source:          "cafef.vn",
		DefaultCategory: "Đọc nhanh",
	}, 50)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if a.Title != "Giá vàng hôm nay" {
		t.Fatalf("Title = %q", a.Title)
	}
	if a.StockRelated != NA || a.SentimentScore != NA || a.ServerPushed {
		t.Fatalf("sentinels not applied: %+v", a)
	}
	if a.Category != "ĐỌC NHANH" {
		t.Fatalf("Category = %q, want %q", a.Category, "ĐỌC NHANH")
	}
	if a.PublishedAt != UnknownPublishedAt {
		t.Fatalf("PublishedAt = %d, want sentinel", a.PublishedAt)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	long := strings.Repeat("x", 120)
	cases := []struct {
		name string
		f    Fields
		min  int
		want error
	}{
		{"no title", Fields{Link: "https://a/b", Content: long}, 50, ErrMissingTitle},
		{"blank title", Fields{Title: "   ", Link: "https://a/b", Content: long}, 50, ErrMissingTitle},
		{"no link", Fields{Title: "t", Content: long}, 50, ErrMissingLink},
		{"short content", Fields{Title: "t", Link: "https://a/b", Content: "ngắn"}, 50, ErrShortContent},
		{"empty content", Fields{Title: "t", Link: "https://a/b"}, 0, ErrShortContent},
	}
	for _, tc := range cases {
		_, err := New(tc.f, tc.min)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
		if !errors.Is(err, ErrNotArticle) {
			t.Fatalf("%s: err should wrap ErrNotArticle: %v", tc.name, err)
		}
	}
}

func TestContentGateCountsRunes(t *testing.T) {
	// 50 个越南语字符，按字节会超过 50，按 rune 恰好等于阈值
	content := strings.Repeat("đ", 50)
	if _, err := New(Fields{Title: "t", Link: "l", Content: content}, 50); err != nil {
		t.Fatalf("50 runes should pass a 50 threshold: %v", err)
	}
	if _, err := New(Fields{Title: "t", Link: "l", Content: content}, 51); !errors.Is(err, ErrShortContent) {
		t.Fatalf("50 runes should fail a 51 threshold, got %v", err)
	}
}

func TestNormalizeCategoryNFC(t *testing.T) {
	// "ư" + 组合重音符 与 预组合字符 应得到同一分类
	decomposed := "th\u01b0\u0301ng m\u1ea1i"
	composed := "th\u1ee9ng m\u1ea1i"
	if NormalizeCategory(decomposed) != NormalizeCategory(composed) {
		t.Fatalf("NormalizeCategory not NFC stable: %q vs %q", NormalizeCategory(decomposed), NormalizeCategory(composed))
	}
	if got := NormalizeCategory("  kinh   doanh "); got != "KINH DOANH" {
		t.Fatalf("NormalizeCategory = %q", got)
	}
}

func TestNewClampsLongFields(t *testing.T) {
	a, err := New(Fields{
		Title:   strings.Repeat("ư", MaxTitleRunes-1) + " tiêu đề dài",
		Link:    "https://vnexpress.net/a.html",
		Content: strings.Repeat("ư", MaxContentRunes+10),
	}, 50)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	// 截断点落在空格上，尾部空白去掉
	if a.Title != strings.Repeat("ư", MaxTitleRunes-1) {
		t.Fatalf("title runes = %d", len([]rune(a.Title)))
	}
	if n := len([]rune(a.Content)); n != MaxContentRunes {
		t.Fatalf("content runes = %d", n)
	}
}
