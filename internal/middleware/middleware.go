package middleware

import (
	"net/http"
	"strconv"

	"github.com/kaviapp/kavi/internal/handlers"
	"github.com/kaviapp/kavi/internal/metrics"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var GetHandler = Wrap(handlers.GetHandler)

var PostCVHandler = Wrap(handlers.PostCVHandler)
var PostLinkedInHandler = Wrap(handlers.PostLinkedInHandler)
var ChatbotAskHandler = Wrap(handlers.ChatbotAskHandler)
var ChatbotAnswerHandler = Wrap(handlers.ChatbotAnswerHandler)
var SessionSummaryHandler = Wrap(handlers.SessionSummaryHandler)
var OnboardingHandler = Wrap(handlers.OnboardingHandler)
var PlanHandler = Wrap(handlers.PlanHandler)
var PostIngestHandler = Wrap(handlers.PostIngestHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received")

	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re //stop here if rate limit fails
	}

	return re
}
