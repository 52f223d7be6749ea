package repos

import (
	"github.com/quantumatlas/atlas-backend/internal/data/repos/catalog"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/discussion"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/infra"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/media"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/software"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AlgorithmRepo = catalog.AlgorithmRepo
type AlgorithmRelationTypeRepo = catalog.AlgorithmRelationTypeRepo
type AlgorithmRelationRepo = catalog.AlgorithmRelationRepo
type PatternRelationTypeRepo = catalog.PatternRelationTypeRepo
type PatternRelationRepo = catalog.PatternRelationRepo
type ProblemTypeRepo = catalog.ProblemTypeRepo
type ApplicationAreaRepo = catalog.ApplicationAreaRepo
type PublicationRepo = catalog.PublicationRepo

type ImplementationRepo = software.ImplementationRepo
type SoftwarePlatformRepo = software.SoftwarePlatformRepo
type SdkRepo = software.SdkRepo
type TagRepo = software.TagRepo

type ProviderRepo = infra.ProviderRepo
type CloudServiceRepo = infra.CloudServiceRepo
type ComputeResourceRepo = infra.ComputeResourceRepo
type ComputeResourcePropertyTypeRepo = infra.ComputeResourcePropertyTypeRepo
type ComputeResourcePropertyRepo = infra.ComputeResourcePropertyRepo

type SketchRepo = media.SketchRepo
type ImageRepo = media.ImageRepo

type DiscussionTopicRepo = discussion.TopicRepo
type DiscussionCommentRepo = discussion.CommentRepo

func NewAlgorithmRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRepo {
	return catalog.NewAlgorithmRepo(db, baseLog)
}
func NewAlgorithmRelationTypeRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRelationTypeRepo {
	return catalog.NewAlgorithmRelationTypeRepo(db, baseLog)
}
func NewAlgorithmRelationRepo(db *gorm.DB, baseLog *logger.Logger) AlgorithmRelationRepo {
	return catalog.NewAlgorithmRelationRepo(db, baseLog)
}
func NewPatternRelationTypeRepo(db *gorm.DB, baseLog *logger.Logger) PatternRelationTypeRepo {
	return catalog.NewPatternRelationTypeRepo(db, baseLog)
}
func NewPatternRelationRepo(db *gorm.DB, baseLog *logger.Logger) PatternRelationRepo {
	return catalog.NewPatternRelationRepo(db, baseLog)
}
func NewProblemTypeRepo(db *gorm.DB, baseLog *logger.Logger) ProblemTypeRepo {
	return catalog.NewProblemTypeRepo(db, baseLog)
}
func NewApplicationAreaRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationAreaRepo {
	return catalog.NewApplicationAreaRepo(db, baseLog)
}
func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return catalog.NewPublicationRepo(db, baseLog)
}

func NewImplementationRepo(db *gorm.DB, baseLog *logger.Logger) ImplementationRepo {
	return software.NewImplementationRepo(db, baseLog)
}
func NewSoftwarePlatformRepo(db *gorm.DB, baseLog *logger.Logger) SoftwarePlatformRepo {
	return software.NewSoftwarePlatformRepo(db, baseLog)
}
func NewSdkRepo(db *gorm.DB, baseLog *logger.Logger) SdkRepo { return software.NewSdkRepo(db, baseLog) }
func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo { return software.NewTagRepo(db, baseLog) }

func NewProviderRepo(db *gorm.DB, baseLog *logger.Logger) ProviderRepo {
	return infra.NewProviderRepo(db, baseLog)
}
func NewCloudServiceRepo(db *gorm.DB, baseLog *logger.Logger) CloudServiceRepo {
	return infra.NewCloudServiceRepo(db, baseLog)
}
func NewComputeResourceRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourceRepo {
	return infra.NewComputeResourceRepo(db, baseLog)
}
func NewComputeResourcePropertyTypeRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourcePropertyTypeRepo {
	return infra.NewComputeResourcePropertyTypeRepo(db, baseLog)
}
func NewComputeResourcePropertyRepo(db *gorm.DB, baseLog *logger.Logger) ComputeResourcePropertyRepo {
	return infra.NewComputeResourcePropertyRepo(db, baseLog)
}

func NewSketchRepo(db *gorm.DB, baseLog *logger.Logger) SketchRepo {
	return media.NewSketchRepo(db, baseLog)
}
func NewImageRepo(db *gorm.DB, baseLog *logger.Logger) ImageRepo {
	return media.NewImageRepo(db, baseLog)
}

func NewDiscussionTopicRepo(db *gorm.DB, baseLog *logger.Logger) DiscussionTopicRepo {
	return discussion.NewTopicRepo(db, baseLog)
}
func NewDiscussionCommentRepo(db *gorm.DB, baseLog *logger.Logger) DiscussionCommentRepo {
	return discussion.NewCommentRepo(db, baseLog)
}
