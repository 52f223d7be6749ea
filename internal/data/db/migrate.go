package db

import (
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Reference data
		// =========================
		&types.ProblemType{},
		&types.ApplicationArea{},
		&types.Publication{},
		&types.Tag{},
		&types.AlgorithmRelationType{},
		&types.PatternRelationType{},
		&types.ComputeResourcePropertyType{},

		// =========================
		// Algorithms
		// =========================
		&types.Algorithm{},
		&types.AlgorithmRelation{},
		&types.PatternRelation{},
		&types.Sketch{},
		&types.Image{},

		// =========================
		// Infrastructure
		// =========================
		&types.Provider{},
		&types.ComputeResource{},
		&types.CloudService{},
		&types.ComputeResourceProperty{},

		// =========================
		// Software
		// =========================
		&types.Sdk{},
		&types.SoftwarePlatform{},
		&types.Implementation{},

		// =========================
		// Discussions
		// =========================
		&types.DiscussionTopic{},
		&types.DiscussionComment{},
	)
}
