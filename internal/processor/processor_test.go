package processor

import (
	"strings"
	"testing"

	"github.com/LJTian/VnNewsHub/internal/news"
)

func TestHashTitleDeterministicAndNormalized(t *testing.T) {
	h1a := HashTitle("Giá vàng tăng mạnh")
	h1b := HashTitle("  Giá  vàng tăng   mạnh ")
	h2 := HashTitle("Giá vàng giảm")

	if h1a != h1b {
		t.Fatalf("HashTitle should ignore surrounding and repeated whitespace: %q vs %q", h1a, h1b)
	}
	if h1a == h2 {
		t.Fatalf("HashTitle should differ for different titles: %q", h1a)
	}
	// 组合附加符号与预组合字符视为同一标题
	if HashTitle("th\u01b0\u01a1\u0300ng") != HashTitle("th\u01b0\u1eddng") {
		t.Fatalf("HashTitle should be NFC-stable")
	}
	if len(h1a) != 40 {
		t.Fatalf("sha1 hex length = %d", len(h1a))
	}
}

func TestProcessDedupsAcrossSources(t *testing.T) {
	p := New()
	items := []news.Article{
		{Title: "Giá xăng tăng từ 15h chiều nay", Link: "https://vnexpress.net/a", Source: "vnexpress.net"},
		{Title: "Giá xăng tăng từ 15h chiều nay", Link: "https://tuoitre.vn/b", Source: "tuoitre.vn"},
		{Title: "Lãi suất tiết kiệm giảm", Link: "https://cafef.vn/c", Source: "cafef.vn"},
	}

	out := p.Process(items)
	if len(out) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d", len(out))
	}
	if out[0].Source != "vnexpress.net" {
		t.Fatalf("first occurrence should win, got %q", out[0].Source)
	}
	if out[1].Title != "Lãi suất tiết kiệm giảm" {
		t.Fatalf("order not preserved: %q", out[1].Title)
	}
}

func TestProcessKeepsTitlesDifferingInCase(t *testing.T) {
	// title 列区分大小写，批内去重也必须区分
	if HashTitle("Giá vàng SJC") == HashTitle("giá vàng sjc") {
		t.Fatalf("HashTitle should be case-sensitive")
	}
	out := New().Process([]news.Article{
		{Title: "Giá vàng SJC", Source: "cafef.vn"},
		{Title: "giá vàng sjc", Source: "dantri.com.vn"},
	})
	if len(out) != 2 {
		t.Fatalf("expected both titles kept, got %d", len(out))
	}
}

func TestProcessLeavesArticlesUnchanged(t *testing.T) {
	long := strings.Repeat("ư", news.MaxContentRunes+10)
	in := news.Article{Title: strings.Repeat("a", news.MaxTitleRunes+1), Content: long}
	out := New().Process([]news.Article{in})
	if len(out) != 1 || out[0].Title != in.Title || out[0].Content != in.Content {
		t.Fatalf("Process must not rewrite article fields")
	}
}
