package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"zedorolo/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authClient *auth.Client, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupKYCRouter(e, authMiddleware)
	SetupVehicleRouter(e, authClient, authMiddleware)
	SetupProposalRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupAssistantRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
