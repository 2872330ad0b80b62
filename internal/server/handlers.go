package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/agbru/ssfft/internal/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// multiplyRequest is the JSON body accepted by POST /multiply.
type multiplyRequest struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Algo string `json:"algo"`
}

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}
	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of algorithms this server supports.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"algorithms": []string{service.AlgoFFT, service.AlgoKaratsuba, service.AlgoAuto},
	}
	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleMultiply processes requests to multiply two big integers. It
// accepts a JSON body with decimal string operands "x" and "y" and an
// optional "algo" field.
func (s *Server) handleMultiply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	x, y, algo, err := parseMultiplyParams(r)
	if err != nil {
		var parseErr MultiplyParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.Int("multiply.x_bits", x.BitLen()),
		attribute.Int("multiply.y_bits", y.BitLen()),
		attribute.String("multiply.algo", algo),
	)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Multiply(ctx, algo, x, y)
	duration := time.Since(start)
	s.metrics.ObserveMultiplyDuration(duration.Seconds())

	if errors.Is(err, service.ErrOperandTooLarge) {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("operand exceeds maximum allowed bit length (%d)", s.securityConfig.MaxOperandBits))
		return
	}

	resp := buildMultiplyResponse(x, y, algo, result, duration, err)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

func parseMultiplyParams(r *http.Request) (x, y *big.Int, algo string, err error) {
	var req multiplyRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		return nil, nil, "", MultiplyParseError{
			Message:    "Invalid JSON body",
			StatusCode: http.StatusBadRequest,
		}
	}

	var ok bool
	x, ok = new(big.Int).SetString(req.X, 10)
	if !ok {
		return nil, nil, "", MultiplyParseError{
			Message:    "Invalid 'x' parameter: must be a base-10 integer",
			StatusCode: http.StatusBadRequest,
		}
	}
	y, ok = new(big.Int).SetString(req.Y, 10)
	if !ok {
		return nil, nil, "", MultiplyParseError{
			Message:    "Invalid 'y' parameter: must be a base-10 integer",
			StatusCode: http.StatusBadRequest,
		}
	}

	algo = req.Algo
	if algo == "" {
		algo = service.AlgoAuto
	}

	return x, y, algo, nil
}

func buildMultiplyResponse(x, y *big.Int, algo string, result *big.Int, duration time.Duration, err error) Response {
	resp := Response{
		X:         x.String(),
		Y:         y.String(),
		Duration:  duration.String(),
		Algorithm: algo,
	}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = result
	}
	return resp
}

// writeJSONResponse writes a JSON response with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
