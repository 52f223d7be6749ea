package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/quantumatlas/atlas-backend/internal/http/handlers"
	httpMW "github.com/quantumatlas/atlas-backend/internal/http/middleware"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	Tracing        bool
	PublicBaseURL  string
	AllowedOrigins []string

	HealthHandler *httpH.HealthHandler

	AlgorithmHandler        *httpH.AlgorithmHandler
	AlgoRelationTypeHandler *httpH.AlgorithmRelationTypeHandler
	PatternRelTypeHandler   *httpH.PatternRelationTypeHandler
	PublicationHandler      *httpH.PublicationHandler
	ProblemTypeHandler      *httpH.ProblemTypeHandler
	ApplicationAreaHandler  *httpH.ApplicationAreaHandler
	SketchHandler           *httpH.SketchHandler

	ImplementationHandler   *httpH.ImplementationHandler
	SdkHandler              *httpH.SdkHandler
	TagHandler              *httpH.TagHandler
	SoftwarePlatformHandler *httpH.SoftwarePlatformHandler

	ProviderHandler        *httpH.ProviderHandler
	CloudServiceHandler    *httpH.CloudServiceHandler
	ComputeResourceHandler *httpH.ComputeResourceHandler
	PropertyTypeHandler    *httpH.PropertyTypeHandler
	PropertyHandler        *httpH.PropertyHandler

	DiscussionHandler *httpH.DiscussionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))
	r.Use(httpMW.AttachAPIBase(cfg.PublicBaseURL))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// Algorithms
	if h := cfg.AlgorithmHandler; h != nil {
		api.GET("/algorithms", h.List)
		api.POST("/algorithms", h.Create)
		api.GET("/algorithms/:id", h.Get)
		api.PUT("/algorithms/:id", h.Update)
		api.DELETE("/algorithms/:id", h.Delete)

		api.GET("/algorithms/:id/publications", h.Publications.List)
		api.POST("/algorithms/:id/publications", h.Publications.Add)
		api.GET("/algorithms/:id/publications/:refId", h.Publications.Get)
		api.DELETE("/algorithms/:id/publications/:refId", h.Publications.Delete)

		api.GET("/algorithms/:id/problem-types", h.ProblemTypes.List)
		api.POST("/algorithms/:id/problem-types", h.ProblemTypes.Add)
		api.GET("/algorithms/:id/problem-types/:refId", h.ProblemTypes.Get)
		api.DELETE("/algorithms/:id/problem-types/:refId", h.ProblemTypes.Delete)

		api.GET("/algorithms/:id/application-areas", h.ApplicationAreas.List)
		api.POST("/algorithms/:id/application-areas", h.ApplicationAreas.Add)
		api.GET("/algorithms/:id/application-areas/:refId", h.ApplicationAreas.Get)
		api.DELETE("/algorithms/:id/application-areas/:refId", h.ApplicationAreas.Delete)

		api.GET("/algorithms/:id/pattern-relations", h.ListPatternRelations)
		api.POST("/algorithms/:id/pattern-relations", h.CreatePatternRelation)
		api.GET("/algorithms/:id/pattern-relations/:relId", h.GetPatternRelation)
		api.PUT("/algorithms/:id/pattern-relations/:relId", h.UpdatePatternRelation)
		api.DELETE("/algorithms/:id/pattern-relations/:relId", h.DeletePatternRelation)

		api.GET("/algorithms/:id/algorithm-relations", h.ListAlgorithmRelations)
		api.POST("/algorithms/:id/algorithm-relations", h.CreateAlgorithmRelation)
		api.GET("/algorithms/:id/algorithm-relations/:relId", h.GetAlgorithmRelation)
		api.PUT("/algorithms/:id/algorithm-relations/:relId", h.UpdateAlgorithmRelation)
		api.DELETE("/algorithms/:id/algorithm-relations/:relId", h.DeleteAlgorithmRelation)
	}

	// Sketches
	if h := cfg.SketchHandler; h != nil {
		api.GET("/algorithms/:id/sketches", h.List)
		api.POST("/algorithms/:id/sketches", h.Upload)
		api.GET("/algorithms/:id/sketches/:sketchId", h.Get)
		api.PUT("/algorithms/:id/sketches/:sketchId", h.Update)
		api.DELETE("/algorithms/:id/sketches/:sketchId", h.Delete)
		api.GET("/algorithms/:id/sketches/:sketchId/image", h.Image)
	}

	// Relation and property types
	for _, prefix := range []string{"/algorithm-relation-types", "/algo-relation-types"} {
		if h := cfg.AlgoRelationTypeHandler; h != nil {
			crud(api, prefix, h.List, h.Get, h.Create, h.Update, h.Delete)
		}
	}
	if h := cfg.PatternRelTypeHandler; h != nil {
		crud(api, "/pattern-relation-types", h.List, h.Get, h.Create, h.Update, h.Delete)
	}
	if h := cfg.PropertyTypeHandler; h != nil {
		crud(api, "/compute-resource-property-types", h.List, h.Get, h.Create, h.Update, h.Delete)
	}

	// Publications, problem types, application areas
	if h := cfg.PublicationHandler; h != nil {
		crud(api, "/publications", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/publications/:id/algorithms", h.ListAlgorithms)
	}
	if h := cfg.ProblemTypeHandler; h != nil {
		crud(api, "/problem-types", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/problem-types/:id/parents", h.Parents)
	}
	if h := cfg.ApplicationAreaHandler; h != nil {
		crud(api, "/application-areas", h.List, h.Get, h.Create, h.Update, h.Delete)
	}

	// Implementations
	if h := cfg.ImplementationHandler; h != nil {
		api.GET("/implementations", h.ListAll)
		api.GET("/implementations/:id", h.GetAny)

		api.GET("/algorithms/:id/implementations", h.List)
		api.POST("/algorithms/:id/implementations", h.Create)
		api.GET("/algorithms/:id/implementations/:implId", h.Get)
		api.PUT("/algorithms/:id/implementations/:implId", h.Update)
		api.DELETE("/algorithms/:id/implementations/:implId", h.Delete)
		api.POST("/algorithms/:id/implementations/:implId/execute", h.Execute)

		api.GET("/algorithms/:id/implementations/:implId/tags", h.ListTags)
		api.POST("/algorithms/:id/implementations/:implId/tags", h.AddTag)
		api.DELETE("/algorithms/:id/implementations/:implId/tags/:name", h.RemoveTag)

		api.GET("/algorithms/:id/implementations/:implId/software-platforms", h.ListSoftwarePlatforms)
		api.POST("/algorithms/:id/implementations/:implId/software-platforms", h.AddSoftwarePlatform)
		api.DELETE("/algorithms/:id/implementations/:implId/software-platforms/:refId", h.DeleteSoftwarePlatform)

		if p := cfg.PropertyHandler; p != nil {
			properties(api, "/algorithms/:id/implementations/:implId/compute-resource-properties", p, h.ImplementationOwner)
		}
	}

	// Compute resource properties on algorithms and compute resources
	if p := cfg.PropertyHandler; p != nil {
		properties(api, "/algorithms/:id/compute-resource-properties", p, httpH.AlgorithmOwner)
		properties(api, "/compute-resources/:id/compute-resource-properties", p, httpH.ComputeResourceOwner)
	}

	// Software
	if h := cfg.SdkHandler; h != nil {
		crud(api, "/sdks", h.List, h.Get, h.Create, h.Update, h.Delete)
	}
	if h := cfg.TagHandler; h != nil {
		// :id is a tag id or a tag name
		crud(api, "/tags", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/tags/:id/implementations", h.ListImplementations)
	}
	if h := cfg.SoftwarePlatformHandler; h != nil {
		crud(api, "/software-platforms", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/software-platforms/:id/implementations", h.ListImplementations)
		api.GET("/software-platforms/:id/compute-resources", h.ListComputeResources)
		api.POST("/software-platforms/:id/compute-resources", h.AddComputeResource)
		api.DELETE("/software-platforms/:id/compute-resources/:refId", h.DeleteComputeResource)
		api.GET("/software-platforms/:id/cloud-services", h.ListCloudServices)
		api.POST("/software-platforms/:id/cloud-services", h.AddCloudService)
		api.DELETE("/software-platforms/:id/cloud-services/:refId", h.DeleteCloudService)
	}

	// Infrastructure
	if h := cfg.ProviderHandler; h != nil {
		crud(api, "/providers", h.List, h.Get, h.Create, h.Update, h.Delete)
	}
	if h := cfg.CloudServiceHandler; h != nil {
		crud(api, "/cloud-services", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/cloud-services/:id/compute-resources", h.ListComputeResources)
		api.POST("/cloud-services/:id/compute-resources", h.AddComputeResource)
		api.DELETE("/cloud-services/:id/compute-resources/:refId", h.DeleteComputeResource)
	}
	if h := cfg.ComputeResourceHandler; h != nil {
		crud(api, "/compute-resources", h.List, h.Get, h.Create, h.Update, h.Delete)
		api.GET("/compute-resources/:id/cloud-services", h.ListCloudServices)
		api.GET("/compute-resources/:id/software-platforms", h.ListSoftwarePlatforms)
	}

	// Discussions
	if h := cfg.DiscussionHandler; h != nil {
		crud(api, "/discussion-topics", h.ListTopics, h.GetTopic, h.CreateTopic, h.UpdateTopic, h.DeleteTopic)
		api.GET("/discussion-topics/:id/discussion-comments", h.ListComments)
		api.POST("/discussion-topics/:id/discussion-comments", h.CreateComment)
		api.GET("/discussion-topics/:id/discussion-comments/:commentId", h.GetComment)
		api.PUT("/discussion-topics/:id/discussion-comments/:commentId", h.UpdateComment)
		api.DELETE("/discussion-topics/:id/discussion-comments/:commentId", h.DeleteComment)
	}

	return r
}

func crud(g *gin.RouterGroup, prefix string, list, get, create, update, remove gin.HandlerFunc) {
	g.GET(prefix, list)
	g.POST(prefix, create)
	g.GET(prefix+"/:id", get)
	g.PUT(prefix+"/:id", update)
	g.DELETE(prefix+"/:id", remove)
}

func properties(g *gin.RouterGroup, prefix string, h *httpH.PropertyHandler, owner httpH.OwnerResolver) {
	g.GET(prefix, h.List(owner))
	g.POST(prefix, h.Create(owner))
	g.GET(prefix+"/:propId", h.Get(owner))
	g.PUT(prefix+"/:propId", h.Update(owner))
	g.DELETE(prefix+"/:propId", h.Delete(owner))
}
