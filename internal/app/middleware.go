package app

import (
	httpMW "github.com/ShaikhHussain06/Skill-sculptor/internal/http/middleware"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
