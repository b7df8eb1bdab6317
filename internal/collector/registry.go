package collector

import "fmt"

type registration struct {
	name    string
	factory func(Options) Source
}

// 注册顺序即 RunAll 的执行与输出顺序
var registry = []registration{
	{"vnexpress", func(o Options) Source { return NewVnExpress(o) }},
	{"cafef", func(o Options) Source { return NewCafeF(o) }},
	{"cafeland", func(o Options) Source { return NewCafeland(o) }},
	{"vietnamnet", func(o Options) Source { return NewVietnamNet(o) }},
	{"vov", func(o Options) Source { return NewVOV(o) }},
	{"laodong", func(o Options) Source { return NewLaoDong(o) }},
	{"nld", func(o Options) Source { return NewNLD(o) }},
	{"baochinhphu", func(o Options) Source { return NewBaoChinhPhu(o) }},
	{"tinnhanhchungkhoan", func(o Options) Source { return NewTinNhanhChungKhoan(o) }},
	{"vietstock", func(o Options) Source { return NewVietStock(o) }},
	{"tuoitre", func(o Options) Source { return NewTuoiTre(o) }},
	{"dantri", func(o Options) Source { return NewDanTri(o) }},
	{"antt", func(o Options) Source { return NewANTT(o) }},
	{"cna", func(o Options) Source { return NewCNA(o) }},
	{"qdnd", func(o Options) Source { return NewQDND(o) }},
	{"thanhnien", func(o Options) Source { return NewThanhNien(o) }},
	{"vneconomy", func(o Options) Source { return NewVnEconomy(o) }},
	{"coin68", func(o Options) Source { return NewCoin68(o) }},
	{"kinhtengoaithuong", func(o Options) Source { return NewKinhTeNgoaiThuong(o) }},
	{"nguoiquansat", func(o Options) Source { return NewNguoiQuanSat(o) }},
	{"taichinhdoanhnghiep", func(o Options) Source { return NewTaiChinhDoanhNghiep(o) }},
	{"thoibaonganhang", func(o Options) Source { return NewThoiBaoNganHang(o) }},
	{"thoibaotaichinh", func(o Options) Source { return NewThoiBaoTaiChinh(o) }},
	{"vietnamfinance", func(o Options) Source { return NewVietnamFinance(o) }},
	{"xaydungchinhsach", func(o Options) Source { return NewXayDungChinhSach(o) }},
}

// Names 返回所有已注册的来源名
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.name)
	}
	return names
}

// Has 判断来源是否已注册
func Has(name string) bool {
	for _, r := range registry {
		if r.name == name {
			return true
		}
	}
	return false
}

// New 按名称创建适配器，每次调用都是新的会话
func New(name string, opts Options) (Source, error) {
	for _, r := range registry {
		if r.name == name {
			return r.factory(opts), nil
		}
	}
	return nil, fmt.Errorf("collector: %q: %w", name, ErrUnknownSource)
}
