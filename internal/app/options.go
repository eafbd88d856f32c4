package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clickpath/internal/config"
	"github.com/clickpath/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同时运行接口与缓存失效 worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	opts.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}

func validateMode(mode string) error {
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
		return nil
	default:
		return fmt.Errorf("unknown mode %q (expected all, api or worker)", mode)
	}
}
