package mahjong

import "fmt"

// Sender 把动作拼成可读的牌谱文字,只做展示不做裁决。
// 座位名从外部查,查不到就用座位号。
type Sender struct {
	nameOf func(seat int32) string
	lines  []string
}

func NewSender(nameOf func(seat int32) string) *Sender {
	return &Sender{
		nameOf: nameOf,
		lines:  make([]string, 0),
	}
}

func (s *Sender) Lines() []string {
	return s.lines
}

func (s *Sender) Reset() {
	s.lines = s.lines[:0]
}

func (s *Sender) seatName(seat int32) string {
	if seat == SeatNull {
		return "-"
	}
	if s.nameOf != nil {
		if name := s.nameOf(seat); name != "" {
			return name
		}
	}
	return fmt.Sprintf("座位%d", seat)
}

// Append 追加一条动作记录
func (s *Sender) Append(action *Action) {
	if action == nil {
		return
	}
	var line string
	switch action.Operate {
	case OperateStart:
		line = fmt.Sprintf("开局,庄家%s", s.seatName(action.Seat))
	case OperateFlower:
		line = fmt.Sprintf("%s 补花 %s 摸回 %s", s.seatName(action.Seat), action.Tile.Name(), action.Extra.Name())
	case OperateDraw:
		line = fmt.Sprintf("%s 摸牌", s.seatName(action.Seat))
	case OperateDiscard:
		line = fmt.Sprintf("%s 打出 %s", s.seatName(action.Seat), action.Tile.Name())
	case OperatePon:
		line = fmt.Sprintf("%s 碰 %s(来自%s)", s.seatName(action.Seat), action.Tile.Name(), s.seatName(action.From))
	case OperateChow:
		line = fmt.Sprintf("%s 吃 %s(来自%s)", s.seatName(action.Seat), action.Tile.Name(), s.seatName(action.From))
	case OperateKon:
		line = fmt.Sprintf("%s 杠 %s", s.seatName(action.Seat), action.Tile.Name())
	case OperateHu:
		if action.From == SeatNull {
			line = fmt.Sprintf("%s 自摸胡", s.seatName(action.Seat))
		} else {
			line = fmt.Sprintf("%s 胡 %s(点炮%s)", s.seatName(action.Seat), action.Tile.Name(), s.seatName(action.From))
		}
	default:
		line = fmt.Sprintf("%s %s", s.seatName(action.Seat), GetOperateName(action.Operate))
	}
	s.lines = append(s.lines, line)
}
