package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is a savings recommendation band derived from monthly net income.
type Tier int

const (
	TierDeficit Tier = iota
	TierZero
	TierFreeDeposit
	TierStandard
	TierPremium
)

const (
	StandardThreshold int64 = 1_000_000
	PremiumThreshold  int64 = 3_000_000
)

func (t Tier) String() string {
	switch t {
	case TierDeficit:
		return "deficit"
	case TierZero:
		return "zero"
	case TierFreeDeposit:
		return "free_deposit"
	case TierStandard:
		return "standard"
	case TierPremium:
		return "premium"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Recommendation is the guidance payload for a tier.
type Recommendation struct {
	Tier         Tier
	NetIncome    int64
	Title        string
	Guidance     string
	MaxTermYears int
	// AnnualRate is a percentage, e.g. 4.2 for 4.2% per year.
	AnnualRate decimal.Decimal
	// ProjectedMaturity is what saving NetIncome every month for a year
	// yields at AnnualRate simple interest. Zero when saving is not advised.
	ProjectedMaturity int64
}

type tierTemplate struct {
	title    string
	guidance string
	years    int
	rate     decimal.Decimal
}

var tierTemplates = map[Tier]tierTemplate{
	TierDeficit: {
		title:    "지출 점검 필요",
		guidance: "해당 월은 지출이 수입보다 많았습니다.\n적금보다는 지출 절약을 통한 재정 안정화가 우선입니다.",
	},
	TierZero: {
		title:    "소액 적금 시작",
		guidance: "해당 월은 순수익이 0원입니다.\n지출을 점검하고, 최소한의 금액(예: 월 10만원)부터 시작하는 소액 적금 상품을 고려해 보세요.",
	},
	TierFreeDeposit: {
		title:    "자유 적립식 적금 추천",
		guidance: "월 50만원 이하 자유롭게 납입 가능한 자유 적립식 적금을 추천합니다.\n유동적인 수입에 맞춰 납입 가능하며, 매월 여윳돈이 생길 때마다 납입하여 저축 습관을 기르세요.",
		years:    1,
		rate:     decimal.RequireFromString("3.5"),
	},
	TierStandard: {
		title:    "표준형 적금 A 추천",
		guidance: "월 100만원~300만원 납입이 적절하며, 조건 없이 기본 금리가 높은 표준 정기 적금 A를 추천합니다.",
		years:    3,
		rate:     decimal.RequireFromString("4.2"),
	},
	TierPremium: {
		title:    "프리미엄 적금 B 추천",
		guidance: "월 200만원 이상 납입이 가능하며, 높은 금액을 위한 특별 우대금리가 적용되는 고액 정기 적금 B를 추천합니다.",
		years:    5,
		rate:     decimal.RequireFromString("5.5"),
	},
}

// TierFor classifies a monthly net income. Ranges are disjoint.
func TierFor(netIncome int64) Tier {
	switch {
	case netIncome < 0:
		return TierDeficit
	case netIncome == 0:
		return TierZero
	case netIncome < StandardThreshold:
		return TierFreeDeposit
	case netIncome < PremiumThreshold:
		return TierStandard
	default:
		return TierPremium
	}
}

// Recommend maps a monthly net income to its tier and guidance.
func Recommend(netIncome int64) Recommendation {
	tier := TierFor(netIncome)
	tpl := tierTemplates[tier]

	rec := Recommendation{
		Tier:         tier,
		NetIncome:    netIncome,
		Title:        tpl.title,
		Guidance:     fmt.Sprintf("이번 달 순수익: %s\n%s", FormatWon(netIncome), tpl.guidance),
		MaxTermYears: tpl.years,
		AnnualRate:   tpl.rate,
	}
	if netIncome > 0 {
		rec.ProjectedMaturity = projectYear(netIncome, tpl.rate)
	}
	return rec
}

// projectYear returns principal plus simple interest for twelve monthly
// deposits. Deposit k earns interest for (13-k) months, 78 months in total.
func projectYear(monthly int64, ratePercent decimal.Decimal) int64 {
	deposit := decimal.NewFromInt(monthly)
	principal := deposit.Mul(decimal.NewFromInt(12))
	interest := deposit.
		Mul(ratePercent).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(78)).
		Div(decimal.NewFromInt(12))
	return principal.Add(interest).Round(0).IntPart()
}
