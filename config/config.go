// Package config 提供引擎可调参数的加载与校验，覆盖日志级别、指标命名空间
// 以及稠密矩阵物化阶段的并行度，支持从 TOML 文件加载并在文件变更时热更新。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EngineOptions 汇总了可通过配置文件或环境变量覆盖的引擎行为.
type EngineOptions struct {
	// LogLevel 控制 logging 包输出的最低级别: debug/info/warn/error.
	LogLevel string `mapstructure:"log_level" toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	// MetricsNamespace 是 Prometheus 指标的命名空间前缀.
	MetricsNamespace string `mapstructure:"metrics_namespace" toml:"metrics_namespace"`
	// MaterializeWorkers 是稠密矩阵物化并行 worker 数量的配置项。
	// 本模块中没有代码读取该字段：transitivity 包的物化入口总是以 worker
	// 数 0 调用 bitmatrix.MaterializeRows，即顺序物化。
	MaterializeWorkers int `mapstructure:"materialize_workers" toml:"materialize_workers" validate:"gte=0"`
	// MaterializeWarnThreshold 是链长的警告阈值：超过此值时应优先使用
	// compactClosure 而非稠密矩阵，参见 spec §7 的内存建议。
	MaterializeWarnThreshold int `mapstructure:"materialize_warn_threshold" toml:"materialize_warn_threshold" validate:"gte=0"`
}

// DefaultEngineOptions 返回一组安全的默认值.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		LogLevel:                 "info",
		MetricsNamespace:         "stixar_graphlib",
		MaterializeWorkers:       0,
		MaterializeWarnThreshold: 1 << 15, // ~sqrt(2^31) scale chains are where compactClosure starts to matter.
	}
}

var (
	vInstance = viper.New()
	onReload  []func(EngineOptions)
)

// RegisterReloadHook 注册配置热更新回调，在 WatchConfig 检测到文件变化后触发.
func RegisterReloadHook(hook func(EngineOptions)) {
	if hook == nil {
		return
	}
	onReload = append(onReload, hook)
}

// Load 从 TOML 文件加载 EngineOptions，环境变量以 GRAPHLIB_ 为前缀覆盖同名字段，
// 并在加载后持续监听文件变更以支持热更新。
func Load(path string) (EngineOptions, error) {
	opts := DefaultEngineOptions()

	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")
	vInstance.SetEnvPrefix("GRAPHLIB")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := vInstance.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(opts); err != nil {
		return opts, err
	}

	vInstance.WatchConfig()
	vInstance.OnConfigChange(func(event fsnotify.Event) {
		const debounce = 250 * time.Millisecond
		time.Sleep(debounce)

		reloaded := DefaultEngineOptions()
		if err := vInstance.Unmarshal(&reloaded); err != nil {
			return
		}
		if err := validate(reloaded); err != nil {
			return
		}
		for _, hook := range onReload {
			hook(reloaded)
		}
	})

	return opts, nil
}

func validate(opts EngineOptions) error {
	v := validator.New()
	if err := v.Struct(opts); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
