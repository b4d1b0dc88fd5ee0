package handlers

import "github.com/gofiber/fiber/v3"

// ============================================================
// Routes
// ============================================================

// Register вешает health проверки, документацию и API редактора на app.
func Register(app fiber.Router, designs *DesignHandler, health *HealthHandler) {
	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	api := app.Group("/api/v1")
	api.Get("/presets", designs.ListPresets)
	api.Post("/designs", designs.Create)

	d := api.Group("/designs/:id", designs.Load)
	d.Get("/", designs.Get)
	d.Delete("/", designs.Delete)
	d.Get("/snippet", designs.Snippet)
	d.Get("/live", designs.Live)
	d.Put("/shapes", designs.SetShapes)
	d.Put("/tool", designs.SetTool)
	d.Post("/preset", designs.ApplyPreset)
	d.Post("/colors/reset", designs.ResetColors)
	d.Patch("/input", designs.SetInput)
	d.Patch("/color", designs.SetColor)
	d.Patch("/flags", designs.SetFlag)
	d.Put("/mode", designs.SetFramework)
	d.Put("/editing-mode", designs.SetEditingMode)
	d.Post("/svg", designs.ImportSVG)
	d.Post("/svg/done", designs.FinishSVG)
	d.Post("/background", designs.SetBackground)
	d.Delete("/background", designs.ClearBackground)
	d.Post("/render-canvas/reset", designs.ResetRenderCanvas)
	d.Post("/reset", designs.Reset)
}
