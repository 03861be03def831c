package function

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const (
	AllowedMethods  = "GET, POST, OPTIONS"
	AllowedHeaders  = "Content-Type"
	PreflightMaxAge = "86400"
)

func preflight() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": AllowedMethods,
			"Access-Control-Allow-Headers": AllowedHeaders,
			"Access-Control-Max-Age":       PreflightMaxAge,
		},
		Body:            "",
		IsBase64Encoded: false,
	}
}

func methodNotAllowed() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusMethodNotAllowed,
		Headers:         map[string]string{"Access-Control-Allow-Origin": "*"},
		Body:            `{"error": "Method not allowed"}`,
		IsBase64Encoded: false,
	}
}

func jsonResponse(status int, payload any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body:            string(body),
		IsBase64Encoded: false,
	}, nil
}
