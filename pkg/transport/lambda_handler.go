package transport

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/gorillamux"
	"github.com/gorilla/mux"
)

// LambdaHandler serves API Gateway proxy events with the HTTP router.
type LambdaHandler struct {
	adapter *gorillamux.GorillaMuxAdapter
}

// NewLambdaHandler wraps router for the Lambda runtime.
func NewLambdaHandler(router *mux.Router) *LambdaHandler {
	return &LambdaHandler{adapter: gorillamux.New(router)}
}

// Handle translates the event into an http.Request and the recorded
// response back into a proxy response.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.adapter.ProxyWithContext(ctx, *core.NewSwitchableAPIGatewayRequestV1(&req))
	if resp == nil || resp.Version1() == nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return *resp.Version1(), err
}
