package analytics

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	AspectFood    = "food"
	AspectPrice   = "price"
	AspectService = "service"
)

// DefaultAspects lists the words counted for each aspect, in segmented form.
var DefaultAspects = map[string][]string{
	AspectFood: {
		"món", "món_ăn", "đồ_ăn", "thức_ăn", "ngon", "dở", "vị", "nước_dùng", "nước_chấm",
		"thịt", "cơm", "bún", "phở", "mì", "lẩu", "bánh", "trà_sữa", "tươi", "nguội", "mặn", "nhạt",
	},
	AspectPrice: {
		"giá", "giá_cả", "rẻ", "đắt", "mắc", "tiền", "hợp_lý", "khuyến_mãi", "voucher",
	},
	AspectService: {
		"phục_vụ", "nhân_viên", "chủ_quán", "nhiệt_tình", "thân_thiện", "giao", "giao_hàng",
		"shipper", "chờ", "nhanh", "chậm", "thái_độ",
	},
}

// CountAspectWords counts the words of a normalized review that belong to
// each aspect.
func CountAspectWords(normalized string, aspects map[string][]string) map[string]int {
	lookup := make(map[string][]string)
	for aspect, words := range aspects {
		for _, word := range words {
			lookup[word] = append(lookup[word], aspect)
		}
	}
	counts := make(map[string]int, len(aspects))
	for _, word := range strings.Fields(normalized) {
		for _, aspect := range lookup[stripNegation(word)] {
			counts[aspect]++
		}
	}
	return counts
}

type aspectKey struct {
	year   int
	aspect string
	label  string
}

func countAspects(reviews []Review, aspects map[string][]string) []AspectCount {
	totals := make(map[aspectKey]int)
	for _, r := range reviews {
		for aspect, count := range CountAspectWords(r.Normalized, aspects) {
			totals[aspectKey{year: r.Date.Year(), aspect: aspect, label: r.Label}] += count
		}
	}
	out := lo.MapToSlice(totals, func(key aspectKey, count int) AspectCount {
		return AspectCount{Year: key.year, Aspect: key.aspect, Label: key.label, Count: count}
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Aspect != b.Aspect {
			return a.Aspect < b.Aspect
		}
		return a.Label < b.Label
	})
	return out
}
