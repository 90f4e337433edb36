package mahjong

// CheckerWait 弃牌后给其他座位验操作的检查接口。
// 提交的应答不信任客户端,仲裁前都要再过一遍这里。
type CheckerWait interface {
	Check(seat int32, opt *Operates)
}

type CheckerPao struct{ play *Play } // 接炮检查器
func NewCheckerPao(play *Play) CheckerWait {
	return &CheckerPao{play: play}
}
func (c *CheckerPao) Check(seat int32, opt *Operates) {
	data := NewHuData(c.play.playData[seat], c.play.goldTile)
	if data.CheckPaoHu(c.play.LastDiscard()) {
		opt.AddOperate(OperateHu)
	}
}

type CheckerPon struct{ play *Play } // 碰牌检查器
func NewCheckerPon(play *Play) CheckerWait {
	return &CheckerPon{play: play}
}
func (c *CheckerPon) Check(seat int32, opt *Operates) {
	playData := c.play.playData[seat]
	if CanPon(playData.handTiles, c.play.LastDiscard(), c.play.goldTile) {
		opt.AddOperate(OperatePon)
	}
}

type CheckerChow struct{ play *Play } // 吃牌检查器,只有弃牌者下家可吃
func NewCheckerChow(play *Play) CheckerWait {
	return &CheckerChow{play: play}
}
func (c *CheckerChow) Check(seat int32, opt *Operates) {
	if GetNextSeat(c.play.curSeat, 1, SeatCount) != seat {
		return
	}
	playData := c.play.playData[seat]
	discard := c.play.LastDiscard()
	if !CanChow(playData.handTiles, discard, c.play.goldTile) {
		return
	}
	opt.AddOperate(OperateChow)
	for first := range ValidChowTiles(playData.handTiles, discard, c.play.goldTile) {
		opt.ChowFirsts = append(opt.ChowFirsts, first.ToInt32())
	}
}

// FetchWaitOperates 汇总某座位对当前弃牌的全部合法应答
func (p *Play) FetchWaitOperates(seat int32) *Operates {
	opt := NewOperates(OperatePass)
	if p.phase != PhaseCalling || seat == p.curSeat {
		return opt
	}
	for _, checker := range []CheckerWait{NewCheckerPao(p), NewCheckerPon(p), NewCheckerChow(p)} {
		checker.Check(seat, opt)
	}
	return opt
}

// CheckerSelf 自己回合的操作检查
type CheckerSelf interface {
	Check(opt *Operates)
}

type checkerHu struct{ play *Play }

func NewCheckerHu(play *Play) CheckerSelf {
	return &checkerHu{play: play}
}
func (c *checkerHu) Check(opt *Operates) {
	data := NewHuData(c.play.playData[c.play.curSeat], c.play.goldTile)
	if data.CheckSelfHu() {
		opt.AddOperate(OperateHu)
	}
}

type checkerKon struct{ play *Play }

func NewCheckerKon(play *Play) CheckerSelf {
	return &checkerKon{play: play}
}
func (c *checkerKon) Check(opt *Operates) {
	if c.play.dealer.GetRestCount() <= 0 {
		return
	}
	playData := c.play.playData[c.play.curSeat]
	seen := make(map[Tile]struct{})
	for _, t := range playData.handTiles {
		kind := t.Kind()
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		if playData.canKon(kind, KonTypeAn) || playData.canKon(kind, KonTypeBu) {
			opt.AddOperate(OperateKon)
			return
		}
	}
}

// FetchSelfOperates 当前座位摸牌后的可用操作
func (p *Play) FetchSelfOperates() *Operates {
	opt := NewOperates(OperateDiscard)
	if p.phase != PhasePlaying || p.needDraw {
		return opt
	}
	for _, checker := range []CheckerSelf{NewCheckerHu(p), NewCheckerKon(p)} {
		checker.Check(opt)
	}
	return opt
}
