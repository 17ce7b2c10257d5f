package token

import "Solagent-Core/internal/actions"

// Register 把代币组的全部动作注册到注册表。
func Register(reg *actions.Registry) {
	reg.Register(NewWalletAddressAction())
	reg.Register(NewBalanceAction())
	reg.Register(NewTokenBalancesAction())
	reg.Register(NewTransferAction())
	reg.Register(NewGetTPSAction())
	reg.Register(NewRequestFundsAction())
}
