package config

import (
	"pdf-validator/internal/artifact"
	"pdf-validator/internal/domain"
	"pdf-validator/internal/repository"
	"pdf-validator/internal/runner"
	"pdf-validator/internal/service"
	"pdf-validator/internal/tools"
	"pdf-validator/internal/validator"
	"pdf-validator/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	AuthService       domain.AuthService
	DocumentSource    domain.DocumentSource
	Toolchain         validator.Toolchain
	ValidationService domain.ValidationService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client; storage validation and auth are disabled without it
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	var source domain.DocumentSource
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase disabled, stored document validation unavailable", "reason", err.Error())
	} else {
		source = service.NewStorageService(supabaseClient, appLogger)
	}
	authService := service.NewAuthService(supabaseClient, appLogger)

	toolchain := NewToolchain(config, appLogger)
	validationService := service.NewValidationService(
		toolchain,
		service.ValidationOptions{
			Timeout:       config.GetValidationTimeout(),
			MaxPages:      config.GetMaxPages(),
			SpoolDir:      config.GetArtifactDir(),
			MaxUploadSize: config.GetMaxUploadSize(),
			StatsInterval: config.GetStatsInterval(),
		},
		source,
		appLogger,
	)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		SupabaseClient:    supabaseClient,
		AuthService:       authService,
		DocumentSource:    source,
		Toolchain:         toolchain,
		ValidationService: validationService,
	}
}

// NewToolchain wires the external checks used by every validation
func NewToolchain(config domain.Config, appLogger domain.Logger) validator.Toolchain {
	procs := runner.New(runner.Options{
		KillGrace: config.GetKillGrace(),
		Niceness:  config.GetProcessNiceness(),
		Logger:    appLogger,
	})

	qpdf := tools.NewQPDF(config.GetQPDFPath(), procs, appLogger)
	mutool := tools.NewMuTool(tools.MuToolOptions{
		Binary:     config.GetMuToolPath(),
		Resolution: config.GetRenderResolution(),
		UseSudo:    config.GetRenderUseSudo(),
	}, procs, appLogger)

	var pages domain.PageProber = qpdf
	switch config.GetPageProber() {
	case "mupdf", "fitz":
		pages = tools.NewFitzProber(appLogger)
	case "qpdf", "":
	default:
		appLogger.Warn("Unknown page prober, using qpdf", "prober", config.GetPageProber())
	}

	return validator.Toolchain{
		Integrity: qpdf,
		Pages:     pages,
		Renderer:  mutool,
		Artifacts: artifact.NewTracker(config.GetArtifactDir(), config.GetArtifactExt(), appLogger),
		Logger:    appLogger,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}

// GetValidationService returns the validation service instance
func (c *Container) GetValidationService() domain.ValidationService {
	return c.ValidationService
}
