//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/napolitain/solver-slayer/internal/api"
	"github.com/napolitain/solver-slayer/internal/config"
	"github.com/napolitain/solver-slayer/internal/logger"
	"github.com/napolitain/solver-slayer/internal/models"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// server lives across warm invocations so the result cache is reused.
var server = api.NewServer(config.DefaultConfig(), logger.Default(os.Getenv("LOG_LEVEL")))

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	var (
		resp any
		err  error
	)
	if strings.HasSuffix(event.RawPath, "/sweep") {
		resp, err = server.Sweep(ctx, []byte(body))
	} else {
		resp, err = server.Optimize(ctx, []byte(body))
	}
	if err != nil {
		if models.IsConfigError(err) {
			return errResp(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errResp(http.StatusGatewayTimeout, err.Error())
		}
		return errResp(http.StatusInternalServerError, err.Error())
	}

	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
