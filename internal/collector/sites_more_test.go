package collector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/LJTian/VnNewsHub/internal/news"
)

func TestArticleURLFilters(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		link string
		want bool
	}{
		{"tcdn article", isTCDNArticleURL, "https://taichinhdoanhnghiep.net.vn/lai-suat-d123456.html", true},
		{"tcdn category", isTCDNArticleURL, "https://taichinhdoanhnghiep.net.vn/tai-chinh/", false},
		{"tbnh article", isTBNHArticleURL, "https://thoibaonganhang.vn/lai-suat-huy-dong-167890.html", true},
		{"tbnh video", isTBNHArticleURL, "https://thoibaonganhang.vn/video-ban-tin-167891.html", false},
		{"tbnh tag", isTBNHArticleURL, "https://thoibaonganhang.vn/tags/lai-suat-1.html", false},
		{"tbnh without id", isTBNHArticleURL, "https://thoibaonganhang.vn/gioi-thieu.html", false},
		{"html article", isHTMLArticleURL, "https://nguoiquansat.vn/gia-vang-hom-nay-123.html", true},
		{"html video", isHTMLArticleURL, "https://nguoiquansat.vn/video/gia-vang-123.html", false},
		{"html author", isHTMLArticleURL, "https://nguoiquansat.vn/author/nguyen-van-a.html", false},
		{"html no suffix", isHTMLArticleURL, "https://nguoiquansat.vn/tin-moi-nhat", false},
		{"ktnt article", isKinhTeNgoaiThuongArticleURL, "https://kinhtengoaithuong.vn/xuat-khau-gao-tang-manh", true},
		{"ktnt home", isKinhTeNgoaiThuongArticleURL, "https://kinhtengoaithuong.vn/", false},
		{"ktnt category", isKinhTeNgoaiThuongArticleURL, "https://kinhtengoaithuong.vn/category/thi-truong/", false},
		{"xdcs article", isXDCSArticleURL, "https://xaydungchinhsach.chinhphu.vn/chinh-sach-moi-119250101123456789.htm", true},
		{"xdcs short id", isXDCSArticleURL, "https://xaydungchinhsach.chinhphu.vn/chinh-sach-12345.htm", false},
		{"xdcs no htm", isXDCSArticleURL, "https://xaydungchinhsach.chinhphu.vn/119250101123456789", false},
	}
	for _, tc := range cases {
		if got := tc.fn(tc.link); got != tc.want {
			t.Fatalf("%s: %s = %v, want %v", tc.name, tc.link, got, tc.want)
		}
	}
}

func TestThanhNienPathCategory(t *testing.T) {
	cases := map[string]string{
		"https://thanhnien.vn/kinh-te/gia-vang-185250101.htm": "kinh te",
		"https://thanhnien.vn/gia-vang-185250101.htm":         "",
		"https://thanhnien.vn/":                               "",
	}
	for link, want := range cases {
		if got := thanhnienPathCategory(link); got != want {
			t.Fatalf("thanhnienPathCategory(%q) = %q, want %q", link, got, want)
		}
	}
}

func TestThanhNienCategoryFromPath(t *testing.T) {
	body := strings.Repeat("Giá vàng trong nước tiếp tục tăng mạnh phiên sáng nay. ", 2)
	fs := newFixtureServer(t, map[string]string{
		"/rss/home.rss": rssFeed(`<item><title>Giá vàng tăng</title><link>/kinh-te/gia-vang-185250101.htm</link></item>`),
		"/kinh-te/gia-vang-185250101.htm": `<html><body><h1 class="detail-title">Giá vàng tăng</h1>
<div class="detail-time">01/01/2025 08:30</div><div id="abb-content"><p>` + body + `</p>
<div class="morenews"><p>Tin liên quan</p></div></div></body></html>`,
	})
	tn := NewThanhNien(testOptions(fs))

	urls, err := tn.ListArticleURLs(context.Background(), 10)
	if err != nil || len(urls) != 1 {
		t.Fatalf("ListArticleURLs = %v, %v", urls, err)
	}
	a, err := tn.FetchArticle(context.Background(), urls[0])
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.Category != "KINH TE" {
		t.Fatalf("category = %q", a.Category)
	}
	if a.PublishedAt != parseDMY("01/01/2025 08:30") {
		t.Fatalf("published_at = %d", a.PublishedAt)
	}
	if strings.Contains(a.Content, "Tin liên quan") {
		t.Fatalf("noise kept: %q", a.Content)
	}
}

func TestFeedContent(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"&lt;h2&gt;Tóm tắt&lt;/h2&gt;&lt;p&gt;Đoạn một&lt;/p&gt;", "Tóm tắt Đoạn một"},
		{"<div>Chỉ có <b>văn bản</b></div>", "Chỉ có văn bản"},
		{"  văn bản   thuần ", "văn bản thuần"},
	}
	for _, tc := range cases {
		if got := feedContent(tc.raw); got != tc.want {
			t.Fatalf("feedContent(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestVnEconomyContentFromFeed(t *testing.T) {
	feed := rssFeed(`<item><title>Xuất khẩu tăng</title><link>/xuat-khau-tang.htm</link>
<category>Kinh tế</category><pubDate>Wed, 01 Jan 2025 08:00:00 +0700</pubDate>
<description><![CDATA[<h2>Xuất khẩu quý IV</h2><p>Kim ngạch xuất khẩu tăng mạnh.</p>]]></description></item>`)
	fs := newFixtureServer(t, map[string]string{"/tin-moi.rss": feed})
	v := NewVnEconomy(testOptions(fs))

	// 未经列表阶段直接抓取：重新拉取 feed
	a, err := v.FetchArticle(context.Background(), fs.URL+"/xuat-khau-tang.htm")
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.Content != "Xuất khẩu quý IV Kim ngạch xuất khẩu tăng mạnh." {
		t.Fatalf("content = %q", a.Content)
	}
	if a.Category != "KINH TẾ" || a.PublishedAt != 1735693200 {
		t.Fatalf("category=%q published_at=%d", a.Category, a.PublishedAt)
	}
	if fs.hit("/xuat-khau-tang.htm") != 0 {
		t.Fatalf("article page must not be requested")
	}
	if fs.hit("/tin-moi.rss") != 1 {
		t.Fatalf("feed hits = %d", fs.hit("/tin-moi.rss"))
	}

	_, err = v.FetchArticle(context.Background(), fs.URL+"/khong-co.htm")
	if !errors.Is(err, news.ErrNotArticle) {
		t.Fatalf("err = %v, want ErrNotArticle", err)
	}
}

func TestCoin68DateScanAndListing(t *testing.T) {
	body := "Giá Bitcoin vượt mốc mới trong phiên giao dịch hôm nay với khối lượng lớn."
	fs := newFixtureServer(t, map[string]string{
		"/": `<html><body><div class="css-19idom"><div class="css-112x203">
<a href="/article/bitcoin-1">Bitcoin</a><a href="https://other.example/x">Ngoài</a></div></div></body></html>`,
		"/article/bitcoin-1": `<html><body><h1>Bitcoin lập đỉnh</h1><span>Coin68</span><span>02/01/2025 10:15</span>
<div id="content"><p>` + body + `</p><p>Ngắn</p><p>Nguồn: tổng hợp từ nhiều hãng tin quốc tế khác nhau.</p></div></body></html>`,
	})
	c := NewCoin68(testOptions(fs))

	urls, err := c.ListArticleURLs(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListArticleURLs error: %v", err)
	}
	if !equalStrings(urls, []string{fs.URL + "/article/bitcoin-1"}) {
		t.Fatalf("urls = %v", urls)
	}
	a, err := c.FetchArticle(context.Background(), urls[0])
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.PublishedAt != parseDMY("02/01/2025 10:15") || a.PublishedAt == news.UnknownPublishedAt {
		t.Fatalf("published_at = %d", a.PublishedAt)
	}
	if a.Content != body {
		t.Fatalf("content = %q", a.Content)
	}
	if a.Category != "CRYPTO" {
		t.Fatalf("category = %q", a.Category)
	}
}

func TestKinhTeNgoaiThuongListingFallback(t *testing.T) {
	fs := newFixtureServer(t, map[string]string{
		"/": `<html><body><nav><a href="/category/thi-truong/">Thị trường</a></nav>
<div><a href="/xuat-khau-gao">Gạo</a><a href="/">Trang chủ</a></div></body></html>`,
	})
	urls, err := NewKinhTeNgoaiThuong(testOptions(fs)).ListArticleURLs(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListArticleURLs error: %v", err)
	}
	if !equalStrings(urls, []string{fs.URL + "/xuat-khau-gao"}) {
		t.Fatalf("urls = %v", urls)
	}
}

func TestKinhTeNgoaiThuongCategoryPrefersTitleAttr(t *testing.T) {
	fs := newFixtureServer(t, map[string]string{
		"/xuat-khau-gao": `<html><body><a itemprop="item" href="/">Trang chủ</a>
<a itemprop="item" href="/c/xuat-nhap-khau" title="Xuất nhập khẩu">XNK</a><h1>Xuất khẩu gạo tăng</h1>
<div class="article-content"><p>Xuất khẩu gạo năm nay tăng mạnh.</p></div></body></html>`,
	})
	k := NewKinhTeNgoaiThuong(testOptions(fs))
	a, err := k.FetchArticle(context.Background(), fs.URL+"/xuat-khau-gao")
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.Category != "XUẤT NHẬP KHẨU" {
		t.Fatalf("category = %q", a.Category)
	}
}

func TestThoiBaoTaiChinhSplitDate(t *testing.T) {
	body := strings.Repeat("Ngân sách nhà nước thu vượt dự toán. ", 2)
	fs := newFixtureServer(t, map[string]string{
		"/ngan-sach-123.html": `<html><body><a class="article-catname">Tài chính</a><h1 class="post-title">Thu ngân sách</h1>
<span class="format_date">03/01/2025</span><span class="format_time">14:20</span>
<div class="post-desc">Tóm tắt.</div><div class="post-content __MASTERCMS_CONTENT"><p>` + body + `</p></div></body></html>`,
	})
	a, err := NewThoiBaoTaiChinh(testOptions(fs)).FetchArticle(context.Background(), fs.URL+"/ngan-sach-123.html")
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.PublishedAt != parseDMY("03/01/2025 14:20") {
		t.Fatalf("published_at = %d", a.PublishedAt)
	}
	if !strings.HasPrefix(a.Content, "Tóm tắt. Ngân sách") {
		t.Fatalf("content = %q", a.Content)
	}
}

func TestVietnamFinanceDirectParagraphsOnly(t *testing.T) {
	direct := strings.Repeat("Thị trường chứng khoán phục hồi mạnh mẽ trong phiên cuối tuần. ", 2)
	fs := newFixtureServer(t, map[string]string{
		"/thi-truong.html": `<html><body><h1 class="detail-title">Chứng khoán phục hồi</h1>
<div id="news_detail"><div id="explus-editor"><p>` + direct + `</p>
<div class="box-related"><p>Bài liên quan được nhúng bên trong nội dung chính.</p></div></div></div></body></html>`,
	})
	a, err := NewVietnamFinance(testOptions(fs)).FetchArticle(context.Background(), fs.URL+"/thi-truong.html")
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if strings.Contains(a.Content, "liên quan") {
		t.Fatalf("nested paragraph kept: %q", a.Content)
	}
	if a.Category != "FINANCE" {
		t.Fatalf("category = %q", a.Category)
	}
}

func TestXayDungChinhSachDropsTrailers(t *testing.T) {
	body := "Chính phủ ban hành nghị định mới về chính sách hỗ trợ doanh nghiệp nhỏ và vừa."
	fs := newFixtureServer(t, map[string]string{
		"/nghi-dinh-119250101123456789.htm": `<html><body><h1 data-role="title">Nghị định mới</h1>
<p data-role="publishdate">04/01/2025 09:00</p><div data-role="content"><p>` + body + `</p>
<p>NGUỒN: Cổng thông tin điện tử Chính phủ và các bộ ngành liên quan.</p><h3>Ngắn</h3></div></body></html>`,
	})
	a, err := NewXayDungChinhSach(testOptions(fs)).FetchArticle(context.Background(), fs.URL+"/nghi-dinh-119250101123456789.htm")
	if err != nil {
		t.Fatalf("FetchArticle error: %v", err)
	}
	if a.Content != body {
		t.Fatalf("content = %q", a.Content)
	}
	if a.Category != "POLICY" {
		t.Fatalf("category = %q", a.Category)
	}
}
