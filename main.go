package main

import (
	"engagement_service/internal/api/router"

	"github.com/gofiber/fiber/v2"
)

// 此程式只用於 init swagger, 服務入口在 cmd/
// swag init -g main.go -o ./cmd/engagement_service/docs
func main() {
	// 创建 Fiber 应用
	app := fiber.New()

	// 注册路由
	router.RegisterRoutes(app, router.Handlers{})
}
