package defi

import (
	"Solagent-Core/internal/actions"
	"Solagent-Core/internal/providers/jupiter"
)

// Register 把 DeFi 组的全部动作注册到注册表。
// jup 为 nil 时使用默认的 Jupiter 公共端点。
func Register(reg *actions.Registry, jup *jupiter.Client) {
	if jup == nil {
		jup = jupiter.NewClient(jupiter.Config{})
	}
	reg.Register(NewFetchPriceAction(jup))
	reg.Register(NewTradeAction(jup))
}
