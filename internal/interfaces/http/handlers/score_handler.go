package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/boskovicgroup/bottchercomplexity/internal/application/scoring"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
	"github.com/boskovicgroup/bottchercomplexity/pkg/sdf"
)

// metricsSource labels scores produced through the HTTP API.
const metricsSource = "http"

// ScoreHandler serves the complexity-scoring endpoints.
type ScoreHandler struct {
	service     *scoring.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewScoreHandler constructs a ScoreHandler.
func NewScoreHandler(service *scoring.Service, logger logging.Logger, maxBodySize int64) *ScoreHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ScoreHandler{
		service:     service,
		logger:      logger.Named("http"),
		maxBodySize: maxBodySize,
	}
}

// scoreRequest is the JSON request body accepted by Score.
type scoreRequest struct {
	Molfile string `json:"molfile"`
}

// Score handles POST /api/v1/score.  The request is either a JSON object
// with a "molfile" field or a raw V2000 connection table; the query
// parameter "diagnostics" overrides the configured default.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	molfile, ok := h.readMolfile(w, r)
	if !ok {
		return
	}

	result, err := h.service.ScoreMolfile(metricsSource, molfile, h.diagnostics(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// batchEntry is one record's outcome in a batch response.  Exactly one of
// Result and Error is set.
type batchEntry struct {
	Index  int             `json:"index"`
	Result *scoring.Result `json:"result,omitempty"`
	Error  *ErrorResponse  `json:"error,omitempty"`
}

// batchResponse summarises a batch scoring run.
type batchResponse struct {
	Scored  int          `json:"scored"`
	Failed  int          `json:"failed"`
	Entries []batchEntry `json:"entries"`
}

// ScoreBatch handles POST /api/v1/score/batch.  The body is a multi-record
// SDF stream; records that fail to parse or score are reported inline and do
// not abort the remaining records.
func (h *ScoreHandler) ScoreBatch(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	defer body.Close()

	diagnostics := h.diagnostics(r)
	reader := sdf.NewReader(body)
	resp := batchResponse{Entries: []batchEntry{}}

	for i := 0; ; i++ {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			resp.Failed++
			resp.Entries = append(resp.Entries, batchEntry{Index: i, Error: toErrorResponse(err)})
			continue
		}

		result, err := h.service.ScoreRecord(metricsSource, rec, diagnostics)
		if err != nil {
			resp.Failed++
			resp.Entries = append(resp.Entries, batchEntry{Index: i, Error: toErrorResponse(err)})
			continue
		}
		resp.Scored++
		resp.Entries = append(resp.Entries, batchEntry{Index: i, Result: result})
	}

	writeJSON(w, http.StatusOK, resp)
}

// readMolfile extracts the connection table from the request body, handling
// both the JSON envelope and raw molfile submissions.
func (h *ScoreHandler) readMolfile(w http.ResponseWriter, r *http.Request) (string, bool) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		writeAppError(w, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read request body"))
		return "", false
	}
	if len(raw) == 0 {
		writeAppError(w, errors.New(errors.ErrCodeBadRequest, "request body is empty"))
		return "", false
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req scoreRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			writeAppError(w, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid JSON body"))
			return "", false
		}
		if req.Molfile == "" {
			writeAppError(w, errors.New(errors.ErrCodeBadRequest, "molfile field is required"))
			return "", false
		}
		return req.Molfile, true
	}
	return string(raw), true
}

func (h *ScoreHandler) diagnostics(r *http.Request) bool {
	if v := r.URL.Query().Get("diagnostics"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return h.service.Diagnostics()
}

// toErrorResponse converts an error to the wire form used in batch entries.
func toErrorResponse(err error) *ErrorResponse {
	code := errors.GetCode(err)
	resp := &ErrorResponse{
		Code:    code.String(),
		Message: errors.DefaultMessageForCode(code),
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			resp.Message = appErr.Message
		}
		resp.Detail = appErr.Detail
	}
	return resp
}
