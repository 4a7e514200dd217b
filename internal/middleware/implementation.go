package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/kaviapp/kavi/internal/adapter/utils"
	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/handlers"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	re.req = req.WithContext(ctx)

	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), re.logger) {
		handlers.WriteErrorResponse(re.writer, http.StatusUnauthorized, "", "Unauthorized")
		re.badRequest.isBadRequest = true
		re.badRequest.errorMessage = "invalid token"
		re.badRequest.httpCode = http.StatusUnauthorized
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func IsValidBearerToken(authHeader string, log *logger_i.Logger) bool {
	if config.NoAuthBypass {
		log.Warn("auth bypass active, no token configured")
		return true
	}
	if authHeader == "" {
		log.Error("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(config.AuthToken)) != 1 {
		log.Error("Invalid authorization header")
		return false
	}

	return true
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Error("Too many requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
		return re
	}
	return re
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, "Your IP: "+re.req.RemoteAddr, re.badRequest.errorMessage)
		return false
	}
	return true
}
