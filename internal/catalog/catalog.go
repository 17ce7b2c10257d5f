package catalog

import (
	"Solagent-Core/internal/actions"
	"Solagent-Core/internal/actions/defi"
	"Solagent-Core/internal/actions/misc"
	"Solagent-Core/internal/actions/token"
	"Solagent-Core/internal/providers/bonfida"
	"Solagent-Core/internal/providers/jupiter"
)

// Dependencies 聚合动作组所需的外部服务客户端。字段为 nil 时
// 使用对应服务的默认公共端点。
type Dependencies struct {
	Jupiter *jupiter.Client
	Bonfida *bonfida.Client
}

// RegisterAll 把内置动作目录全量注册到注册表。注册按组进行，
// 同名动作遵循后注册覆盖的规则，调用方可以在本函数之后再注册
// 自定义动作来替换内置实现。
func RegisterAll(reg *actions.Registry, deps Dependencies) {
	token.Register(reg)
	defi.Register(reg, deps.Jupiter)
	misc.Register(reg, deps.Bonfida)
}
