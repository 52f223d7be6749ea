package app

import (
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"github.com/quantumatlas/atlas-backend/internal/services"
)

type Services struct {
	Algorithm             services.AlgorithmService
	AlgorithmRelationType services.AlgorithmRelationTypeService
	PatternRelationType   services.PatternRelationTypeService
	Publication           services.PublicationService
	ProblemType           services.ProblemTypeService
	ApplicationArea       services.ApplicationAreaService
	Sketch                services.SketchService

	Implementation   services.ImplementationService
	Sdk              services.SdkService
	Tag              services.TagService
	SoftwarePlatform services.SoftwarePlatformService

	Provider                    services.ProviderService
	CloudService                services.CloudServiceService
	ComputeResource             services.ComputeResourceService
	ComputeResourcePropertyType services.ComputeResourcePropertyTypeService
	ComputeResourceProperty     services.ComputeResourcePropertyService

	Discussion services.DiscussionService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	cascade := services.NewCascade(log, r.Implementation, r.ComputeResourceProperty, r.Sketch, r.Image, c.ImageCache)

	sketches := services.NewSketchService(db, log, r.Algorithm, r.Sketch, r.Image, c.ImageCache, cascade, cfg.MaxImagePixels)

	return Services{
		Algorithm: services.NewAlgorithmService(
			db, log,
			r.Algorithm,
			r.AlgorithmRelation,
			r.AlgorithmRelationType,
			r.PatternRelation,
			r.PatternRelationType,
			r.ProblemType,
			r.ApplicationArea,
			r.Publication,
			cascade,
		),
		AlgorithmRelationType: services.NewAlgorithmRelationTypeService(db, log, r.AlgorithmRelationType, r.AlgorithmRelation),
		PatternRelationType:   services.NewPatternRelationTypeService(db, log, r.PatternRelationType, r.PatternRelation),
		Publication:           services.NewPublicationService(db, log, r.Publication, r.Algorithm),
		ProblemType:           services.NewProblemTypeService(db, log, r.ProblemType),
		ApplicationArea:       services.NewApplicationAreaService(db, log, r.ApplicationArea),
		Sketch:                instrumentSketches(sketches, c.Metrics),

		Implementation: services.NewImplementationService(
			db, log,
			r.Implementation,
			r.Algorithm,
			r.Sdk,
			r.Tag,
			r.SoftwarePlatform,
			c.Analyzer,
			cascade,
		),
		Sdk:              services.NewSdkService(db, log, r.Sdk, r.Implementation),
		Tag:              services.NewTagService(db, log, r.Tag, r.Implementation),
		SoftwarePlatform: services.NewSoftwarePlatformService(db, log, r.SoftwarePlatform, r.Implementation, r.ComputeResource, r.CloudService),

		Provider:                    services.NewProviderService(db, log, r.Provider, r.CloudService, c.Sealer),
		CloudService:                services.NewCloudServiceService(db, log, r.CloudService, r.Provider, r.ComputeResource),
		ComputeResource:             services.NewComputeResourceService(db, log, r.ComputeResource, r.CloudService, r.SoftwarePlatform, r.ComputeResourceProperty),
		ComputeResourcePropertyType: services.NewComputeResourcePropertyTypeService(db, log, r.ComputeResourcePropertyType, r.ComputeResourceProperty),
		ComputeResourceProperty: services.NewComputeResourcePropertyService(
			db, log,
			r.ComputeResourceProperty,
			r.ComputeResourcePropertyType,
			r.Algorithm,
			r.Implementation,
			r.ComputeResource,
		),

		Discussion: services.NewDiscussionService(db, log, r.DiscussionTopic, r.DiscussionComment),
	}
}
