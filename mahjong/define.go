package mahjong

import "errors"

const (
	SeatNull  int32 = -1
	SeatCount int32 = 4
)

const (
	TileCountInitBanker = 17
	TileCountInitNormal = 16
	SetCountFull        = 5 // 满手5副+1对
)

type EColor int

const (
	ColorUndefined EColor = -1
	ColorCharacter EColor = iota - 1 // 万
	ColorBamboo                      // 条
	ColorDot                         // 筒
	ColorWind                        // 风牌
	ColorDragon                      // 红中
	ColorEnd
	ColorBegin = ColorCharacter
)

var PointCountByColor = [ColorEnd]int{9, 9, 9, 4, 1}
var SameTileCountByColor = [ColorEnd]int{4, 4, 4, 4, 4}

// Phase 一局牌的阶段
type Phase int32

const (
	PhaseSetup Phase = iota
	PhaseBonusExposure
	PhasePlaying
	PhaseCalling
	PhaseEnded
)

var phaseNames = map[Phase]string{
	PhaseSetup:         "setup",
	PhaseBonusExposure: "bonus_exposure",
	PhasePlaying:       "playing",
	PhaseCalling:       "calling",
	PhaseEnded:         "ended",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

const (
	OperateNone    = 0
	OperatePass    = 1 << (iota - 1) // 过  1<<0 = 1
	OperateChow                      // 吃  1<<1 = 2
	OperatePon                       // 碰  1<<2 = 4
	OperateKon                       // 杠  1<<3 = 8
	OperateHu                        // 胡  1<<4 = 16
	OperateDiscard                   // 出牌  1<<5 = 32
	OperateDraw                      // 摸牌  1<<6 = 64
	OperateFlower                    // 补花  1<<7 = 128
	OperateStart                     // 开局  1<<8 = 256
)

var OperateNames = map[int]string{
	OperatePass:    "Pass",
	OperateChow:    "Chow",
	OperatePon:     "Pon",
	OperateKon:     "Kon",
	OperateHu:      "Win",
	OperateDiscard: "Discard",
	OperateDraw:    "Draw",
	OperateFlower:  "Flower",
	OperateStart:   "GameStart",
}

type KonType int

const (
	KonTypeNone KonType = -1 + iota
	KonTypeAn           // 暗杠
	KonTypeBu           // 碰牌补杠
)

// CallState 弃牌待应答记录里每个座位的状态
type CallState int32

const (
	CallUnresponded CallState = iota
	CallDiscarder
	CallPass
	CallWin
	CallPon
	CallChow
)

// 错误分类:所有拒绝均不改动局面
var (
	ErrIllegalTurn        = errors.New("mahjong: not this seat's turn")
	ErrIllegalTile        = errors.New("mahjong: illegal tile")
	ErrIllegalCallTiming  = errors.New("mahjong: illegal call timing")
	ErrStructuralMismatch = errors.New("mahjong: claim does not match hand")
	ErrNotInPhase         = errors.New("mahjong: not in expected phase")
	ErrCallResolved       = errors.New("mahjong: calls already resolved")
)

func GetNextSeat(seat, step, seatCount int32) int32 {
	return (seat + step) % seatCount
}

type Action struct {
	Seat    int32
	From    int32
	Operate int
	Tile    Tile
	Extra   Tile
	Time    int64
}
