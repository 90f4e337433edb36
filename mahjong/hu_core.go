package mahjong

// HuCore 胡牌核心:穷举回溯判断手牌能否拆成 setsNeeded 副(刻/顺)+ 一对,
// 金牌可以顶替任意数牌。递归使用只读计数表,每个分支复制后再消牌,回退是隐式的。
type HuCore struct {
	maxHand int
}

func NewHuCore(maxHand int) *HuCore {
	return &HuCore{maxHand: maxHand}
}

// CheckHu tiles为暗牌(含金),gold为本局金牌型,setsNeeded为还缺的副数。
// 张数不足或不等于 3*setsNeeded+2 一律不胡。
func (h *HuCore) CheckHu(tiles []Tile, gold Tile, setsNeeded int) bool {
	if len(tiles) > h.maxHand || len(tiles) != setsNeeded*3+2 {
		return false
	}
	counts, golds := h.splitGold(tiles, gold)
	return h.checkShape(counts, golds, setsNeeded, false)
}

// CheckHuWithPair 对子已定(两张金做将)时剩余牌能否拆完,金对加分判定用
func (h *HuCore) CheckHuWithPair(tiles []Tile, gold Tile, setsNeeded int) bool {
	if len(tiles) > h.maxHand || len(tiles) != setsNeeded*3 {
		return false
	}
	counts, golds := h.splitGold(tiles, gold)
	return h.checkShape(counts, golds, setsNeeded, true)
}

func (h *HuCore) splitGold(tiles []Tile, gold Tile) (map[Tile]int, int) {
	counts := make(map[Tile]int)
	golds := 0
	for _, t := range tiles {
		if t.IsGold(gold) {
			golds++
		} else {
			counts[t.Kind()]++
		}
	}
	return counts, golds
}

// 固定全序:字牌在前,数牌按花色名再按点数。每次取最小剩余牌型做支点,
// 支点的牌必然归属某一副或对子,全部归属方式都会被枚举,所以搜索是完备的。
var suitMatchOrder = [ColorEnd]int{1, 0, 2, 0, 0} // bamboo < character < dot

func kindLess(a, b Tile) bool {
	as, bs := a.IsSuit(), b.IsSuit()
	if as != bs {
		return !as
	}
	if !as {
		return a < b
	}
	if oa, ob := suitMatchOrder[a.Color()], suitMatchOrder[b.Color()]; oa != ob {
		return oa < ob
	}
	return a.Point() < b.Point()
}

func smallestKind(counts map[Tile]int) Tile {
	pivot := TileNull
	for kind, c := range counts {
		if c <= 0 {
			continue
		}
		if pivot == TileNull || kindLess(kind, pivot) {
			pivot = kind
		}
	}
	return pivot
}

func consume(counts map[Tile]int, kind Tile, n int) map[Tile]int {
	next := make(map[Tile]int, len(counts))
	for k, c := range counts {
		next[k] = c
	}
	next[kind] -= n
	if next[kind] <= 0 {
		delete(next, kind)
	}
	return next
}

func (h *HuCore) checkShape(counts map[Tile]int, golds, sets int, hasPair bool) bool {
	pivot := smallestKind(counts)
	if pivot == TileNull {
		return h.finishWithGolds(golds, sets, hasPair)
	}

	c := counts[pivot]
	suited := pivot.IsSuit()

	if !hasPair {
		if c >= 2 && h.checkShape(consume(counts, pivot, 2), golds, sets, true) {
			return true
		}
		if suited && golds >= 1 && h.checkShape(consume(counts, pivot, 1), golds-1, sets, true) {
			return true
		}
	}

	if sets > 0 {
		if c >= 3 && h.checkShape(consume(counts, pivot, 3), golds, sets-1, hasPair) {
			return true
		}
		if suited && c >= 2 && golds >= 1 && h.checkShape(consume(counts, pivot, 2), golds-1, sets-1, hasPair) {
			return true
		}
		if suited && golds >= 2 && h.checkShape(consume(counts, pivot, 1), golds-2, sets-1, hasPair) {
			return true
		}
		if suited && h.tryChows(counts, pivot, golds, sets, hasPair) {
			return true
		}
	}
	return false
}

// tryChows 支点作为顺子的低/中/高张,缺口由金牌补
func (h *HuCore) tryChows(counts map[Tile]int, pivot Tile, golds, sets int, hasPair bool) bool {
	color, point := pivot.Info()
	for base := point - 2; base <= point; base++ {
		if base < 0 || base+2 >= PointCountByColor[color] {
			continue
		}
		next := consume(counts, pivot, 1)
		used := 0
		for i := 0; i < 3; i++ {
			member := MakeTile(color, base+i, 0)
			if member == pivot {
				continue
			}
			if next[member] > 0 {
				next = consume(next, member, 1)
			} else {
				used++
			}
		}
		if used <= golds && h.checkShape(next, golds-used, sets-1, hasPair) {
			return true
		}
	}
	return false
}

// 牌耗尽后,剩余金牌只能3张成副、2张成对
func (h *HuCore) finishWithGolds(golds, sets int, hasPair bool) bool {
	if golds == 0 {
		return sets == 0 && hasPair
	}
	if !hasPair && golds >= 2 && h.finishWithGolds(golds-2, sets, true) {
		return true
	}
	if sets > 0 && golds >= 3 && h.finishWithGolds(golds-3, sets-1, hasPair) {
		return true
	}
	return false
}

var DefaultHuCore = NewHuCore(TileCountInitBanker)
