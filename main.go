// @title EduAgent AI 后端 API
// @version 2.0.0
// @description 智能自适应学习后端：试卷分析、模拟卷生成、OCR评分与个性化学习。

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /api

package main

import (
	"flag"
	"log"

	"eduagent_backend/internal/app"
	"eduagent_backend/internal/config"
	"eduagent_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
