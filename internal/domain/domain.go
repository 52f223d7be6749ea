package domain

import (
	"github.com/quantumatlas/atlas-backend/internal/domain/catalog"
	"github.com/quantumatlas/atlas-backend/internal/domain/discussion"
	"github.com/quantumatlas/atlas-backend/internal/domain/infra"
	"github.com/quantumatlas/atlas-backend/internal/domain/media"
	"github.com/quantumatlas/atlas-backend/internal/domain/software"
)

type Algorithm = catalog.Algorithm
type QuantumAttributes = catalog.QuantumAttributes
type ComputationModel = catalog.ComputationModel
type QuantumComputationModel = catalog.QuantumComputationModel
type AlgorithmRelationType = catalog.AlgorithmRelationType
type AlgorithmRelation = catalog.AlgorithmRelation
type PatternRelationType = catalog.PatternRelationType
type PatternRelation = catalog.PatternRelation
type ProblemType = catalog.ProblemType
type ApplicationArea = catalog.ApplicationArea
type Publication = catalog.Publication

type Implementation = software.Implementation
type Sdk = software.Sdk
type SoftwarePlatform = software.SoftwarePlatform
type Tag = software.Tag

type Provider = infra.Provider
type CloudService = infra.CloudService
type ComputeResource = infra.ComputeResource
type ComputeResourcePropertyType = infra.ComputeResourcePropertyType
type ComputeResourceProperty = infra.ComputeResourceProperty
type Datatype = infra.Datatype
type PropertyOwner = infra.Owner

type DiscussionTopic = discussion.Topic
type DiscussionComment = discussion.Comment
type DiscussionStatus = discussion.Status

type Sketch = media.Sketch
type Image = media.Image

const (
	ComputationModelClassic = catalog.ComputationModelClassic
	ComputationModelQuantum = catalog.ComputationModelQuantum
	ComputationModelHybrid  = catalog.ComputationModelHybrid

	DatatypeInteger = infra.DatatypeInteger
	DatatypeFloat   = infra.DatatypeFloat
	DatatypeString  = infra.DatatypeString

	OwnerAlgorithm       = infra.OwnerAlgorithm
	OwnerImplementation  = infra.OwnerImplementation
	OwnerComputeResource = infra.OwnerComputeResource

	MaskedKey = infra.MaskedKey

	DiscussionOpen   = discussion.StatusOpen
	DiscussionClosed = discussion.StatusClosed
)
