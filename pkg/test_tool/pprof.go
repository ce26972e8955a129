package testtool

import (
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"engagement_service/pkg/config"
	"engagement_service/pkg/logger"

	"go.uber.org/zap"
)

// StartPprof 非 production 環境才啟動 pprof 監控伺服器, 只聽本機
func StartPprof() {
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return
	}

	go func() {
		logger.Log.Info("Starting pprof server on 127.0.0.1:6060")
		if err := http.ListenAndServe("127.0.0.1:6060", nil); err != nil {
			logger.Log.Warn("pprof server failed", zap.Error(err))
		}
	}()
}

// 常用端點:
// 	/debug/pprof/goroutine
// 	/debug/pprof/heap
// 	/debug/pprof/profile?seconds=30
//
// go tool pprof http://localhost:6060/debug/pprof/heap
