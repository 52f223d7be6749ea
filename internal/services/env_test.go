package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/repos"
	"github.com/quantumatlas/atlas-backend/internal/data/repos/testutil"
	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/platform/analyzer"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
	"github.com/quantumatlas/atlas-backend/internal/platform/secretbox"
)

type testEnv struct {
	ctx context.Context
	db  *gorm.DB

	algoRepo  repos.AlgorithmRepo
	implRepo  repos.ImplementationRepo
	propRepo  repos.ComputeResourcePropertyRepo
	sketchRep repos.SketchRepo
	imageRepo repos.ImageRepo

	algorithms       AlgorithmService
	algoRelTypes     AlgorithmRelationTypeService
	patternRelTypes  PatternRelationTypeService
	propertyTypes    ComputeResourcePropertyTypeService
	problemTypes     ProblemTypeService
	applicationAreas ApplicationAreaService
	publications     PublicationService
	implementations  ImplementationService
	sdks             SdkService
	tags             TagService
	platforms        SoftwarePlatformService
	providers        ProviderService
	cloudServices    CloudServiceService
	computeResources ComputeResourceService
	properties       ComputeResourcePropertyService
	sketches         SketchService
	discussions      DiscussionService
	analyzer         *fakeAnalyzer
}

type envOptions struct {
	imageCache rediscache.ImageCache
	sealer     *secretbox.Sealer
	maxPixels  int
	log        *logger.Logger
}

func newTestEnv(t *testing.T, opts ...func(*envOptions)) *testEnv {
	t.Helper()
	o := envOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	log := o.log
	if log == nil {
		log = testutil.Logger(t)
	}
	db := testutil.DB(t)

	algoRepo := repos.NewAlgorithmRepo(db, log)
	algoRelRepo := repos.NewAlgorithmRelationRepo(db, log)
	algoRelTypeRepo := repos.NewAlgorithmRelationTypeRepo(db, log)
	patternRelRepo := repos.NewPatternRelationRepo(db, log)
	patternRelTypeRepo := repos.NewPatternRelationTypeRepo(db, log)
	problemTypeRepo := repos.NewProblemTypeRepo(db, log)
	areaRepo := repos.NewApplicationAreaRepo(db, log)
	pubRepo := repos.NewPublicationRepo(db, log)
	implRepo := repos.NewImplementationRepo(db, log)
	sdkRepo := repos.NewSdkRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)
	platformRepo := repos.NewSoftwarePlatformRepo(db, log)
	providerRepo := repos.NewProviderRepo(db, log)
	cloudRepo := repos.NewCloudServiceRepo(db, log)
	resourceRepo := repos.NewComputeResourceRepo(db, log)
	propTypeRepo := repos.NewComputeResourcePropertyTypeRepo(db, log)
	propRepo := repos.NewComputeResourcePropertyRepo(db, log)
	sketchRepo := repos.NewSketchRepo(db, log)
	imageRepo := repos.NewImageRepo(db, log)
	topicRepo := repos.NewDiscussionTopicRepo(db, log)
	commentRepo := repos.NewDiscussionCommentRepo(db, log)

	fake := &fakeAnalyzer{}
	cascade := NewCascade(log, implRepo, propRepo, sketchRepo, imageRepo, o.imageCache)

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		algoRepo:  algoRepo,
		implRepo:  implRepo,
		propRepo:  propRepo,
		sketchRep: sketchRepo,
		imageRepo: imageRepo,

		algorithms:       NewAlgorithmService(db, log, algoRepo, algoRelRepo, algoRelTypeRepo, patternRelRepo, patternRelTypeRepo, problemTypeRepo, areaRepo, pubRepo, cascade),
		algoRelTypes:     NewAlgorithmRelationTypeService(db, log, algoRelTypeRepo, algoRelRepo),
		patternRelTypes:  NewPatternRelationTypeService(db, log, patternRelTypeRepo, patternRelRepo),
		propertyTypes:    NewComputeResourcePropertyTypeService(db, log, propTypeRepo, propRepo),
		problemTypes:     NewProblemTypeService(db, log, problemTypeRepo),
		applicationAreas: NewApplicationAreaService(db, log, areaRepo),
		publications:     NewPublicationService(db, log, pubRepo, algoRepo),
		implementations:  NewImplementationService(db, log, implRepo, algoRepo, sdkRepo, tagRepo, platformRepo, fake, cascade),
		sdks:             NewSdkService(db, log, sdkRepo, implRepo),
		tags:             NewTagService(db, log, tagRepo, implRepo),
		platforms:        NewSoftwarePlatformService(db, log, platformRepo, implRepo, resourceRepo, cloudRepo),
		providers:        NewProviderService(db, log, providerRepo, cloudRepo, o.sealer),
		cloudServices:    NewCloudServiceService(db, log, cloudRepo, providerRepo, resourceRepo),
		computeResources: NewComputeResourceService(db, log, resourceRepo, cloudRepo, platformRepo, propRepo),
		properties:       NewComputeResourcePropertyService(db, log, propRepo, propTypeRepo, algoRepo, implRepo, resourceRepo),
		sketches:         NewSketchService(db, log, algoRepo, sketchRepo, imageRepo, o.imageCache, cascade, o.maxPixels),
		discussions:      NewDiscussionService(db, log, topicRepo, commentRepo),
		analyzer:         fake,
	}
}

func (e *testEnv) seedAlgorithm(t *testing.T, name string) *types.Algorithm {
	t.Helper()
	return testutil.SeedAlgorithm(t, e.ctx, e.db, name, types.ComputationModelQuantum)
}

type fakeAnalyzer struct {
	calls int
	last  map[string]string
	out   map[string]string
	err   error
}

var _ analyzer.Control = (*fakeAnalyzer)(nil)

func (f *fakeAnalyzer) Execute(_ context.Context, _ *types.Implementation, params map[string]string) (map[string]string, error) {
	f.calls++
	f.last = params
	return f.out, f.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}
