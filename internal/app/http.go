package app

import (
	"gorm.io/gorm"

	apphttp "github.com/quantumatlas/atlas-backend/internal/http"
	httpH "github.com/quantumatlas/atlas-backend/internal/http/handlers"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler

	Algorithm        *httpH.AlgorithmHandler
	AlgoRelationType *httpH.AlgorithmRelationTypeHandler
	PatternRelType   *httpH.PatternRelationTypeHandler
	Publication      *httpH.PublicationHandler
	ProblemType      *httpH.ProblemTypeHandler
	ApplicationArea  *httpH.ApplicationAreaHandler
	Sketch           *httpH.SketchHandler

	Implementation   *httpH.ImplementationHandler
	Sdk              *httpH.SdkHandler
	Tag              *httpH.TagHandler
	SoftwarePlatform *httpH.SoftwarePlatformHandler

	Provider        *httpH.ProviderHandler
	CloudService    *httpH.CloudServiceHandler
	ComputeResource *httpH.ComputeResourceHandler
	PropertyType    *httpH.PropertyTypeHandler
	Property        *httpH.PropertyHandler

	Discussion *httpH.DiscussionHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, cfg Config, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),

		Algorithm:        httpH.NewAlgorithmHandler(s.Algorithm),
		AlgoRelationType: httpH.NewAlgorithmRelationTypeHandler(s.AlgorithmRelationType),
		PatternRelType:   httpH.NewPatternRelationTypeHandler(s.PatternRelationType),
		Publication:      httpH.NewPublicationHandler(s.Publication),
		ProblemType:      httpH.NewProblemTypeHandler(s.ProblemType),
		ApplicationArea:  httpH.NewApplicationAreaHandler(s.ApplicationArea),
		Sketch:           httpH.NewSketchHandler(s.Sketch, int64(cfg.MaxUploadBytes)),

		Implementation:   httpH.NewImplementationHandler(s.Implementation),
		Sdk:              httpH.NewSdkHandler(s.Sdk),
		Tag:              httpH.NewTagHandler(s.Tag),
		SoftwarePlatform: httpH.NewSoftwarePlatformHandler(s.SoftwarePlatform),

		Provider:        httpH.NewProviderHandler(s.Provider),
		CloudService:    httpH.NewCloudServiceHandler(s.CloudService),
		ComputeResource: httpH.NewComputeResourceHandler(s.ComputeResource),
		PropertyType:    httpH.NewPropertyTypeHandler(s.ComputeResourcePropertyType),
		Property:        httpH.NewPropertyHandler(s.ComputeResourceProperty),

		Discussion: httpH.NewDiscussionHandler(s.Discussion),
	}
}

func wireServer(log *logger.Logger, cfg Config, clients Clients, h Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		Metrics:        clients.Metrics,
		ServiceName:    "atlas",
		Tracing:        cfg.Otel.Enabled,
		PublicBaseURL:  cfg.PublicBaseURL,
		AllowedOrigins: cfg.CORSOrigins,

		HealthHandler: h.Health,

		AlgorithmHandler:        h.Algorithm,
		AlgoRelationTypeHandler: h.AlgoRelationType,
		PatternRelTypeHandler:   h.PatternRelType,
		PublicationHandler:      h.Publication,
		ProblemTypeHandler:      h.ProblemType,
		ApplicationAreaHandler:  h.ApplicationArea,
		SketchHandler:           h.Sketch,

		ImplementationHandler:   h.Implementation,
		SdkHandler:              h.Sdk,
		TagHandler:              h.Tag,
		SoftwarePlatformHandler: h.SoftwarePlatform,

		ProviderHandler:        h.Provider,
		CloudServiceHandler:    h.CloudService,
		ComputeResourceHandler: h.ComputeResource,
		PropertyTypeHandler:    h.PropertyType,
		PropertyHandler:        h.Property,

		DiscussionHandler: h.Discussion,
	})
}
