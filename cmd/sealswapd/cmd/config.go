package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/sealswap/app/telemetry"
	ammtypes "github.com/paw-chain/sealswap/x/amm/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SEALSWAP_FEES_HALTED
	EnvPrefix = "SEALSWAP"

	configFileName  = "sealswap.toml"
	defaultLogLevel = "info"
)

// Config is the resolved CLI configuration
type Config struct {
	Fees      ammtypes.FeeConfig
	Telemetry telemetry.Config
	LogLevel  string
}

// DefaultNodeHome returns the default home directory
func DefaultNodeHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".sealswap"
	}
	return filepath.Join(userHome, ".sealswap")
}

func setDefaults(v *viper.Viper) {
	fees := ammtypes.DefaultFeeConfig()
	v.SetDefault("fees.trade-fee-rate", fees.TradeFeeRate)
	v.SetDefault("fees.protocol-fee-rate", fees.ProtocolFeeRate)
	v.SetDefault("fees.ratio-change-tolerance-rate", fees.RatioChangeToleranceRate)
	v.SetDefault("fees.deadline-slot-duration", fees.DeadlineSlotDuration)
	v.SetDefault("fees.halted", fees.Halted)

	tel := telemetry.DefaultConfig()
	v.SetDefault("telemetry.enabled", tel.Enabled)
	v.SetDefault("telemetry.otlp-endpoint", tel.OTLPEndpoint)
	v.SetDefault("telemetry.sample-rate", tel.SampleRate)
	v.SetDefault("telemetry.environment", tel.Environment)
	v.SetDefault("telemetry.cluster", tel.Cluster)
	v.SetDefault("telemetry.prometheus-enabled", tel.PrometheusEnabled)

	v.SetDefault("log-level", defaultLogLevel)
}

// LoadConfig resolves the configuration from defaults, the TOML config file,
// SEALSWAP_* environment variables and flags, in increasing precedence.
func LoadConfig(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if f := flags.Lookup(FlagLogLevel); f != nil {
		if err := v.BindPFlag("log-level", f); err != nil {
			return Config{}, err
		}
	}
	if f := flags.Lookup(FlagHalted); f != nil {
		if err := v.BindPFlag("fees.halted", f); err != nil {
			return Config{}, err
		}
	}

	configPath, _ := flags.GetString(FlagConfig)
	if configPath == "" {
		home, _ := flags.GetString(FlagHome)
		if home == "" {
			home = DefaultNodeHome()
		}
		configPath = filepath.Join(home, "config", configFileName)
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			configPath = ""
		}
	}

	if configPath != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	cfg, err := configFromViper(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Fees.Validate(); err != nil {
		return Config{}, err
	}
	if err := telemetry.ValidateConfig(cfg.Telemetry); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	var err error

	uints := []struct {
		key string
		dst *uint64
	}{
		{"fees.trade-fee-rate", &cfg.Fees.TradeFeeRate},
		{"fees.protocol-fee-rate", &cfg.Fees.ProtocolFeeRate},
		{"fees.ratio-change-tolerance-rate", &cfg.Fees.RatioChangeToleranceRate},
		{"fees.deadline-slot-duration", &cfg.Fees.DeadlineSlotDuration},
	}
	for _, u := range uints {
		if *u.dst, err = cast.ToUint64E(v.Get(u.key)); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", u.key, err)
		}
	}
	if cfg.Fees.Halted, err = cast.ToBoolE(v.Get("fees.halted")); err != nil {
		return Config{}, fmt.Errorf("invalid fees.halted: %w", err)
	}

	if cfg.Telemetry.Enabled, err = cast.ToBoolE(v.Get("telemetry.enabled")); err != nil {
		return Config{}, fmt.Errorf("invalid telemetry.enabled: %w", err)
	}
	if cfg.Telemetry.SampleRate, err = cast.ToFloat64E(v.Get("telemetry.sample-rate")); err != nil {
		return Config{}, fmt.Errorf("invalid telemetry.sample-rate: %w", err)
	}
	if cfg.Telemetry.PrometheusEnabled, err = cast.ToBoolE(v.Get("telemetry.prometheus-enabled")); err != nil {
		return Config{}, fmt.Errorf("invalid telemetry.prometheus-enabled: %w", err)
	}
	cfg.Telemetry.OTLPEndpoint = cast.ToString(v.Get("telemetry.otlp-endpoint"))
	cfg.Telemetry.Environment = cast.ToString(v.Get("telemetry.environment"))
	cfg.Telemetry.Cluster = cast.ToString(v.Get("telemetry.cluster"))

	cfg.LogLevel = cast.ToString(v.Get("log-level"))
	return cfg, nil
}
