// Package router wires HTTP routes to handlers. Routes are split into
// three groups: unauthenticated infrastructure and browse endpoints,
// the /v1/auth session endpoints, and the farmer-only marketplace
// surface behind JWT and role middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/handler"
	"github.com/vismay-farm/agri-market/internal/middleware"
	"github.com/vismay-farm/agri-market/internal/model"
)

// RegisterRoutes registers routes that need no authentication: the
// health check, the public catalog, listing detail pages and the
// scripted assistant. The cache middleware, when non-nil, is applied to
// the read-only catalog endpoints only.
func RegisterRoutes(e *echo.Echo, cat *handler.CatalogHandler, m *handler.MachineHandler, cr *handler.CropHandler, as *handler.AssistantHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	pub := e.Group("/v1")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("/catalog/machines", cat.ListMachines)
	pub.GET("/catalog/crops", cat.ListCrops)
	pub.GET("/machines/:id", m.GetMachine)
	pub.GET("/crops/:id", cr.GetCrop)

	e.GET("/v1/assistant", as.Intro)
	e.POST("/v1/assistant/chat", as.Chat)
}

// RegisterAuth registers the session endpoints under /v1/auth plus the
// authenticated /v1/me profile read.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleFarmer))
	auth.GET("/me", a.Me)
}

// RegisterFarmer registers the marketplace surface that requires a
// logged-in farmer: listing management, the personalised barter and
// buy browse views, and the two negotiation flows.
func RegisterFarmer(
	e *echo.Echo,
	jwtSecret string,
	cat *handler.CatalogHandler,
	m *handler.MachineHandler,
	cr *handler.CropHandler,
	b *handler.BarterHandler,
	p *handler.PurchaseHandler,
) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleFarmer))

	// Equipment listings.
	g.POST("/machines", m.CreateMachine)
	g.GET("/my-machines", m.ListMyMachines)
	g.PUT("/machines/:id", m.UpdateMachine)
	g.PATCH("/machines/:id", m.UpdateMachine)
	g.DELETE("/machines/:id", m.DeleteMachine)

	// Crop listings.
	g.POST("/crops", cr.CreateCrop)
	g.GET("/my-crops", cr.ListMyCrops)
	g.PUT("/crops/:id", cr.UpdateCrop)
	g.PATCH("/crops/:id", cr.UpdateCrop)
	g.DELETE("/crops/:id", cr.DeleteCrop)

	// Browse views that exclude the viewer's own listings.
	g.GET("/barter/machines", cat.BrowseBarter)
	g.GET("/buy/crops", cat.BrowseCrops)

	// Barter negotiation.
	g.POST("/barters", b.Propose)
	g.POST("/barters/:id/respond", b.Respond)
	g.GET("/barters/sent", b.ListSent)
	g.GET("/barters/received", b.ListReceived)

	// Crop purchase negotiation.
	g.POST("/purchases", p.CreatePurchase)
	g.POST("/purchases/:id/respond", p.Respond)
	g.GET("/purchases/sent", p.ListSent)
	g.GET("/purchases/received", p.ListReceived)
}
