package server

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/agbru/ssfft/internal/bigmat"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	errEmptyMatrix  = errors.New("matrix must have at least one row and column")
	errRaggedMatrix = errors.New("matrix rows must all have the same length")
	errInvalidEntry = errors.New("matrix entry must be a base-10 integer")
)

// matMulRequest is the JSON body accepted by POST /matmul: two matrices of
// decimal string entries, A (M-by-K) and B (K-by-N).
type matMulRequest struct {
	A [][]string `json:"a"`
	B [][]string `json:"b"`
}

// matMulResponse reports the M-by-N product of A and B, with each entry
// rendered as a decimal string to avoid precision loss in JSON numbers.
type matMulResponse struct {
	Result   [][]string `json:"result,omitempty"`
	Duration string     `json:"duration"`
	Error    string     `json:"error,omitempty"`
}

// handleMatMul multiplies two matrices of arbitrary-precision integers
// submitted as nested arrays of decimal strings.
func (s *Server) handleMatMul(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	a, b, err := parseMatMulParams(r)
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
		attribute.Int("matmul.a_rows", a.Rows),
		attribute.Int("matmul.a_cols", a.Cols),
		attribute.Int("matmul.b_cols", b.Cols),
	)

	start := time.Now()
	product, err := bigmat.MulFFT(a, b)
	duration := time.Since(start)
	s.metrics.ObserveMultiplyDuration(duration.Seconds())

	if err != nil {
		s.writeJSONResponse(w, http.StatusOK, matMulResponse{Duration: duration.String(), Error: err.Error()})
		return
	}

	s.writeJSONResponse(w, http.StatusOK, matMulResponse{
		Result:   matrixToStrings(product),
		Duration: duration.String(),
	})
}

func parseMatMulParams(r *http.Request) (a, b *bigmat.Matrix, err error) {
	var req matMulRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
		return nil, nil, MultiplyParseError{Message: "Invalid JSON body", StatusCode: http.StatusBadRequest}
	}

	a, err = matrixFromStrings(req.A)
	if err != nil {
		return nil, nil, MultiplyParseError{Message: "Invalid 'a' matrix: " + err.Error(), StatusCode: http.StatusBadRequest}
	}
	b, err = matrixFromStrings(req.B)
	if err != nil {
		return nil, nil, MultiplyParseError{Message: "Invalid 'b' matrix: " + err.Error(), StatusCode: http.StatusBadRequest}
	}
	return a, b, nil
}

func matrixFromStrings(rows [][]string) (*bigmat.Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errEmptyMatrix
	}
	cols := len(rows[0])
	m := bigmat.NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errRaggedMatrix
		}
		for j, entry := range row {
			v, ok := new(big.Int).SetString(entry, 10)
			if !ok {
				return nil, errInvalidEntry
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}

func matrixToStrings(m *bigmat.Matrix) [][]string {
	out := make([][]string, m.Rows)
	for i := range out {
		out[i] = make([]string, m.Cols)
		for j := range out[i] {
			out[i][j] = m.At(i, j).String()
		}
	}
	return out
}
