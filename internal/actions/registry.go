package actions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	xerrors "Solagent-Core/internal/errors"
	"Solagent-Core/pkg/logger"

	"github.com/google/uuid"
)

// Registry 按名字管理已注册的动作。预期的生命周期是：启动阶段
// 单线程完成全部注册，之后进入只读的并发分发阶段；读路径由
// RWMutex 保护，分发期间的并发调用是安全的。若使用方需要在分发
// 开始后继续注册，需要自行提供同步。
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string
	log     *slog.Logger
}

// NewRegistry 创建一个空的注册表。
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
		log:     logger.Named("actions"),
	}
}

// Register 以动作元数据中的名字注册动作。同名重复注册时后者覆盖
// 前者（last-registration-wins）：外围系统按插件组分多轮注册，
// 更特化的插件需要能够直接覆盖早先的默认实现，而不必先显式注销。
// 覆盖保留首次注册时的列表位置，使元数据列举顺序稳定。
func (r *Registry) Register(action Action) {
	if action == nil {
		return
	}
	name := action.Metadata().Name
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[name]; exists {
		r.log.Debug("action replaced", "name", name)
	} else {
		r.order = append(r.order, name)
	}
	r.actions[name] = action
}

// Get 返回名字对应的动作。
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	action, ok := r.actions[name]
	return action, ok
}

// Names 按注册顺序返回全部动作名。
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len 返回当前注册的动作数量。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Metadata 返回当前注册表的元数据快照，每个名字恰好一条，反映
// 调用时刻的状态。供工具发现使用：AI 规划器据此得知存在哪些动作
// 以及各自期望的输入形状。本方法永不失败，空注册表返回空序列。
func (r *Registry) Metadata() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Metadata, 0, len(r.order))
	for _, name := range r.order {
		if action, ok := r.actions[name]; ok {
			out = append(out, action.Metadata())
		}
	}
	return out
}

// Execute 按名字分发一次调用。名字未注册时返回 ACTION_NOT_FOUND，
// 此时不会产生任何副作用；否则把动作自身的结果或错误原样向上传递，
// 注册表这一层不重试、不兜底、不掩盖。
func (r *Registry) Execute(ctx context.Context, name string, ag Agent, input map[string]any) (map[string]any, error) {
	action, ok := r.Get(name)
	if !ok {
		return nil, xerrors.New(xerrors.CodeActionNotFound,
			fmt.Sprintf("未注册的动作: %s", name))
	}

	invocationID := uuid.NewString()
	r.log.Info("dispatch", "action", name, "invocation_id", invocationID)

	output, err := action.Execute(ctx, ag, input)
	if err != nil {
		r.log.Warn("dispatch failed",
			"action", name,
			"invocation_id", invocationID,
			"code", string(xerrors.CodeOf(err)),
			"error", err,
		)
		return nil, err
	}
	r.log.Info("dispatch ok", "action", name, "invocation_id", invocationID)
	return output, nil
}
