package mahjong

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Rule 一桌的玩法配置,viper加载,缺省值即福州玩法的标准配置
type Rule struct {
	KonBonus    int64         // 每个杠的加分,默认0
	TurnTimeout time.Duration // 出牌限时
	CallTimeout time.Duration // 应答限时
	PresetFile  string        // 配牌文件,调试用
}

func NewRule() *Rule {
	return &Rule{
		KonBonus:    0,
		TurnTimeout: 15 * time.Second,
		CallTimeout: 10 * time.Second,
	}
}

// LoadRule 从配置文件读取,文件缺失时保留默认值
func (r *Rule) LoadRule(path string) error {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetDefault("kon_bonus", r.KonBonus)
	vp.SetDefault("turn_timeout_sec", int(r.TurnTimeout/time.Second))
	vp.SetDefault("call_timeout_sec", int(r.CallTimeout/time.Second))
	if err := vp.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	r.KonBonus = vp.GetInt64("kon_bonus")
	r.TurnTimeout = time.Duration(vp.GetInt("turn_timeout_sec")) * time.Second
	r.CallTimeout = time.Duration(vp.GetInt("call_timeout_sec")) * time.Second
	r.PresetFile = vp.GetString("preset_file")
	return nil
}
