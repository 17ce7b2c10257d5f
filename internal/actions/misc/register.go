package misc

import (
	"Solagent-Core/internal/actions"
	"Solagent-Core/internal/providers/bonfida"
)

// Register 把杂项组的全部动作注册到注册表。
// sns 为 nil 时使用默认的 Bonfida 代理端点。
func Register(reg *actions.Registry, sns *bonfida.Client) {
	if sns == nil {
		sns = bonfida.NewClient(bonfida.Config{})
	}
	reg.Register(NewResolveDomainAction(sns))
}
