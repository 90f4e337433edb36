package mahjong

// Operates 某座位当前可用操作的位集
type Operates struct {
	Value      int32
	ChowFirsts []int32 // 可作为吃牌第一选张的牌型
}

func NewOperates(ops ...int32) *Operates {
	o := &Operates{}
	for _, op := range ops {
		o.AddOperate(op)
	}
	return o
}

func (o *Operates) AddOperate(op int32) {
	o.Value |= op
}

func (o *Operates) AddOperates(ops *Operates) {
	o.Value |= ops.Value
}

func (o *Operates) RemoveOperate(op int32) {
	o.Value &= ^op
}

func (o *Operates) HasOperate(op int32) bool {
	return (o.Value & op) != 0
}

func (o *Operates) Reset() {
	o.Value = 0
}

func GetOperateName(operate int) string {
	if name, ok := OperateNames[operate]; ok {
		return name
	}
	return ""
}
