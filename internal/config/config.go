package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 描述代理进程在启动阶段需要加载的核心配置。
type Config struct {
	RPC       RPCConfig       `yaml:"rpc"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Providers ProvidersConfig `yaml:"providers"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RPCConfig 包含访问 Solana 节点所需的 RPC 信息。
type RPCConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Commitment string `yaml:"commitment"`
}

// WalletConfig 描述代理钱包的加载方式。两种来源二选一：
// keypair_path 指向 JSON 格式的密钥文件，private_key_env 指定
// 存放 base58 私钥的环境变量名。
type WalletConfig struct {
	KeypairPath   string `yaml:"keypair_path"`
	PrivateKeyEnv string `yaml:"private_key_env"`
}

// ProvidersConfig 汇总外部服务的接入配置。
type ProvidersConfig struct {
	Jupiter JupiterConfig `yaml:"jupiter"`
	Bonfida BonfidaConfig `yaml:"bonfida"`
}

// JupiterConfig 配置 Jupiter 聚合器的端点与超时。
type JupiterConfig struct {
	QuoteURL string        `yaml:"quote_url"`
	PriceURL string        `yaml:"price_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// BonfidaConfig 配置域名解析代理的端点与超时。
type BonfidaConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig 控制日志级别、格式与审计输出。
type LoggingConfig struct {
	Level       string      `yaml:"level"`
	Format      string      `yaml:"format"`
	OutputPaths []string    `yaml:"output_paths"`
	Audit       AuditConfig `yaml:"audit"`
}

// AuditConfig 配置交易审计日志。
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Load 负责解析指定路径的 YAML 配置文件。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("配置文件路径为空")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults 在用户未填写部分字段时设置合理的默认值。
func (c *Config) applyDefaults() {
	if c.RPC.Endpoint == "" {
		c.RPC.Endpoint = "https://api.mainnet-beta.solana.com"
	}
	if c.RPC.Commitment == "" {
		c.RPC.Commitment = "confirmed"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if len(c.Logging.OutputPaths) == 0 {
		c.Logging.OutputPaths = []string{"stdout"}
	}
	if c.Logging.Audit.Enabled && c.Logging.Audit.Path == "" {
		c.Logging.Audit.Path = "logs/audit.log"
	}
}

// validate 检查互斥或必填字段。
func (c *Config) validate() error {
	if c.Wallet.KeypairPath != "" && c.Wallet.PrivateKeyEnv != "" {
		return errors.New("keypair_path 与 private_key_env 只能配置一个")
	}
	switch c.RPC.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("不支持的 commitment 级别: %s", c.RPC.Commitment)
	}
	return nil
}
