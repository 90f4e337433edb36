package mahjong

// 算分为纯函数:局面 -> 分数明细,没有副作用,结果随赢家记录存档

type SpecialBonus struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type ScoreBreakdown struct {
	Base        int64          `json:"base"`
	BonusTiles  int64          `json:"bonusTiles"`
	Golds       int64          `json:"golds"`
	KonBonus    int64          `json:"konBonus"`
	StreakBonus int64          `json:"streakBonus"`
	Subtotal    int64          `json:"subtotal"`
	Multiplier  int64          `json:"multiplier"`
	Specials    []SpecialBonus `json:"specials,omitempty"`
	Total       int64          `json:"total"`
}

// WinData 算分入参,由Play在胡牌时刻收集
type WinData struct {
	SelfDraw     bool
	ThreeGolds   bool
	RobbingGold  bool
	BonusCount   int
	GoldCount    int
	KonCount     int
	GoldenPair   bool
	DealerStreak int // 非庄家胡牌时为0
}

const (
	bonusThreeGolds  = 20
	bonusRobbingGold = 20
	bonusGoldenPair  = 30
	bonusNoFlower    = 10
)

// CalcScore 底分1 + 花数 + 金数 + 连庄数,自摸类翻倍,定项奖励乘完再加
func CalcScore(data *WinData, rule *Rule) *ScoreBreakdown {
	bd := &ScoreBreakdown{
		Base:        1,
		BonusTiles:  int64(data.BonusCount),
		Golds:       int64(data.GoldCount),
		KonBonus:    int64(data.KonCount) * rule.KonBonus,
		StreakBonus: int64(data.DealerStreak),
		Multiplier:  1,
	}
	bd.Subtotal = bd.Base + bd.BonusTiles + bd.Golds + bd.KonBonus + bd.StreakBonus

	// 三金倒和抢金按自摸算
	if data.SelfDraw || data.ThreeGolds || data.RobbingGold {
		bd.Multiplier = 2
	}

	if data.ThreeGolds {
		bd.Specials = append(bd.Specials, SpecialBonus{Name: "三金倒", Value: bonusThreeGolds})
	}
	if data.RobbingGold {
		bd.Specials = append(bd.Specials, SpecialBonus{Name: "抢金", Value: bonusRobbingGold})
	}
	if data.GoldenPair {
		bd.Specials = append(bd.Specials, SpecialBonus{Name: "金雀", Value: bonusGoldenPair})
	}
	if data.BonusCount == 0 {
		bd.Specials = append(bd.Specials, SpecialBonus{Name: "无花", Value: bonusNoFlower})
	}

	bd.Total = bd.Subtotal * bd.Multiplier
	for _, sp := range bd.Specials {
		bd.Total += sp.Value
	}
	return bd
}
