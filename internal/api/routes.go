package api

import (
	"github.com/docqa-labs/retrieval-agent/internal/api/middleware"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler, authToken string) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint stays unauthenticated
	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/hackrx/run").
			Filter(middleware.BearerAuth(authToken)).
			To(handler.Run).
			Doc("Answer questions about a remote document").
			Metadata(restfulspec.KeyOpenAPITags, []string{"retrieval"}).
			Reads(models.RetrievalRequest{}).
			Writes(models.RetrievalResult{}).
			Returns(200, "OK", models.RetrievalResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(401, "Unauthorized", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
