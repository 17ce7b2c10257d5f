package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"Solagent-Core/internal/actions"
	"Solagent-Core/internal/agent"
	"Solagent-Core/internal/catalog"
	solanachain "Solagent-Core/internal/chain/solana"
	"Solagent-Core/internal/config"
	"Solagent-Core/internal/providers/bonfida"
	"Solagent-Core/internal/providers/jupiter"
	"Solagent-Core/internal/wallet"
	"Solagent-Core/pkg/logger"

	"github.com/gagliardetto/solana-go/rpc"
)

// main 是代理命令行入口。支持两个子命令：
//
//	solagentd list                  列出全部动作的元数据
//	solagentd exec <name> [json]    执行一个动作
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("solagentd 运行失败: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("用法: solagentd <list|exec> ...")
	}

	configPath := os.Getenv("SOLAGENT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "solagent.yaml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.OutputPaths,
		Audit: logger.AuditConfig{
			Enabled:    cfg.Logging.Audit.Enabled,
			Path:       cfg.Logging.Audit.Path,
			MaxSizeMB:  cfg.Logging.Audit.MaxSizeMB,
			MaxBackups: cfg.Logging.Audit.MaxBackups,
		},
	}); err != nil {
		return err
	}
	defer logger.Sync()

	registry := actions.NewRegistry()
	catalog.RegisterAll(registry, catalog.Dependencies{
		Jupiter: jupiter.NewClient(jupiter.Config{
			QuoteURL: cfg.Providers.Jupiter.QuoteURL,
			PriceURL: cfg.Providers.Jupiter.PriceURL,
			Timeout:  cfg.Providers.Jupiter.Timeout,
		}),
		Bonfida: bonfida.NewClient(bonfida.Config{
			BaseURL: cfg.Providers.Bonfida.BaseURL,
			Timeout: cfg.Providers.Bonfida.Timeout,
		}),
	})

	switch args[0] {
	case "list":
		return listActions(registry)
	case "exec":
		if len(args) < 2 {
			return errors.New("用法: solagentd exec <name> [json]")
		}
		return execAction(ctx, cfg, registry, args[1], args[2:])
	default:
		return fmt.Errorf("未知子命令: %s", args[0])
	}
}

// listActions 以 JSON 输出全部动作的元数据，供工具发现使用。
func listActions(registry *actions.Registry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(registry.Metadata())
}

// execAction 构建执行上下文并分发一次调用。
func execAction(ctx context.Context, cfg *config.Config, registry *actions.Registry, name string, rest []string) error {
	input := map[string]any{}
	if len(rest) > 0 {
		if err := json.Unmarshal([]byte(rest[0]), &input); err != nil {
			return fmt.Errorf("解析输入 JSON 失败: %w", err)
		}
	}

	w, err := loadWallet(cfg)
	if err != nil {
		return err
	}

	client, err := solanachain.NewClient(solanachain.Config{
		Endpoint:   cfg.RPC.Endpoint,
		Commitment: rpc.CommitmentType(cfg.RPC.Commitment),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	ag, err := agent.New(w, client)
	if err != nil {
		return err
	}

	start := time.Now()
	output, err := registry.Execute(ctx, name, ag, input)
	if err != nil {
		return err
	}
	logger.L().Info("action finished", "action", name, "elapsed", time.Since(start))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// loadWallet 按配置优先级加载钱包：密钥文件优先，其次环境变量。
func loadWallet(cfg *config.Config) (wallet.Wallet, error) {
	if cfg.Wallet.KeypairPath != "" {
		return wallet.LoadKeypairWallet(cfg.Wallet.KeypairPath)
	}
	envName := cfg.Wallet.PrivateKeyEnv
	if envName == "" {
		envName = "SOLANA_PRIVATE_KEY"
	}
	encoded := os.Getenv(envName)
	if encoded == "" {
		return nil, fmt.Errorf("环境变量 %s 未设置", envName)
	}
	return wallet.KeypairWalletFromBase58(encoded)
}
