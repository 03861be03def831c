package api

import (
	"context"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// TripFunction is the proxy-event entry point the HTTP adapter forwards to.
type TripFunction interface {
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type TripHandler struct {
	function TripFunction
}

func NewTripHandler(function TripFunction) *TripHandler {
	return &TripHandler{function: function}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.Any("", h.handle)
	router.Any("/", h.handle)
}

func (h *TripHandler) handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var params map[string]string
	if query := c.Request.URL.Query(); len(query) > 0 {
		params = make(map[string]string, len(query))
		for key, values := range query {
			params[key] = values[len(values)-1]
		}
	}

	resp, err := h.function.Handle(c.Request.Context(), events.APIGatewayProxyRequest{
		HTTPMethod:            c.Request.Method,
		Path:                  c.Request.URL.Path,
		Body:                  string(body),
		QueryStringParameters: params,
		Headers:               map[string]string{"Content-Type": c.GetHeader("Content-Type")},
	})
	if err != nil {
		log.WithError(err).WithField("method", c.Request.Method).Error("trip function failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Internal server error"})
		return
	}

	for key, value := range resp.Headers {
		c.Header(key, value)
	}
	c.Status(resp.StatusCode)
	if resp.Body != "" {
		_, _ = c.Writer.WriteString(resp.Body)
	}
}

// NoRoute answers preflight requests on any path; everything else is 404.
func (h *TripHandler) NoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		h.handle(c)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
