package app

import (
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type Repos struct {
	Algorithm             repos.AlgorithmRepo
	AlgorithmRelation     repos.AlgorithmRelationRepo
	AlgorithmRelationType repos.AlgorithmRelationTypeRepo
	PatternRelation       repos.PatternRelationRepo
	PatternRelationType   repos.PatternRelationTypeRepo
	ProblemType           repos.ProblemTypeRepo
	ApplicationArea       repos.ApplicationAreaRepo
	Publication           repos.PublicationRepo

	Implementation   repos.ImplementationRepo
	Sdk              repos.SdkRepo
	Tag              repos.TagRepo
	SoftwarePlatform repos.SoftwarePlatformRepo

	Provider                    repos.ProviderRepo
	CloudService                repos.CloudServiceRepo
	ComputeResource             repos.ComputeResourceRepo
	ComputeResourcePropertyType repos.ComputeResourcePropertyTypeRepo
	ComputeResourceProperty     repos.ComputeResourcePropertyRepo

	Sketch repos.SketchRepo
	Image  repos.ImageRepo

	DiscussionTopic   repos.DiscussionTopicRepo
	DiscussionComment repos.DiscussionCommentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Algorithm:             repos.NewAlgorithmRepo(db, log),
		AlgorithmRelation:     repos.NewAlgorithmRelationRepo(db, log),
		AlgorithmRelationType: repos.NewAlgorithmRelationTypeRepo(db, log),
		PatternRelation:       repos.NewPatternRelationRepo(db, log),
		PatternRelationType:   repos.NewPatternRelationTypeRepo(db, log),
		ProblemType:           repos.NewProblemTypeRepo(db, log),
		ApplicationArea:       repos.NewApplicationAreaRepo(db, log),
		Publication:           repos.NewPublicationRepo(db, log),

		Implementation:   repos.NewImplementationRepo(db, log),
		Sdk:              repos.NewSdkRepo(db, log),
		Tag:              repos.NewTagRepo(db, log),
		SoftwarePlatform: repos.NewSoftwarePlatformRepo(db, log),

		Provider:                    repos.NewProviderRepo(db, log),
		CloudService:                repos.NewCloudServiceRepo(db, log),
		ComputeResource:             repos.NewComputeResourceRepo(db, log),
		ComputeResourcePropertyType: repos.NewComputeResourcePropertyTypeRepo(db, log),
		ComputeResourceProperty:     repos.NewComputeResourcePropertyRepo(db, log),

		Sketch: repos.NewSketchRepo(db, log),
		Image:  repos.NewImageRepo(db, log),

		DiscussionTopic:   repos.NewDiscussionTopicRepo(db, log),
		DiscussionComment: repos.NewDiscussionCommentRepo(db, log),
	}
}
