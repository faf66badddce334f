package eventclient

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/wpras/golfku/pkg/responses"
)

// ProxyController forwards event and template requests from the main
// API to the events service.
type ProxyController struct {
	client *Client
}

func NewProxyController(client *Client) *ProxyController {
	return &ProxyController{client: client}
}

// Proxy replays the incoming request against the events service and
// passes the response through, status and body untouched. A dead or
// slow service turns into a 503 instead of hanging the caller.
func (pc *ProxyController) Proxy(ctx *gin.Context) {
	resp, err := pc.client.Forward(
		ctx.Request.Context(),
		ctx.Request.Method,
		ctx.Request.URL.Path,
		ctx.Request.URL.RawQuery,
		ctx.Request.Body,
		ctx.ContentType(),
	)
	if err != nil {
		log.Printf("Events service request failed: %v", err)
		responses.ServiceUnavailable(ctx, "Events service unavailable")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading events service response: %v", err)
		responses.ServiceUnavailable(ctx, "Events service unavailable")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	ctx.Data(resp.StatusCode, contentType, body)
}
