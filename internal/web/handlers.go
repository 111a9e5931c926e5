package web

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dataquality/internal/core"
	"github.com/JonMunkholm/dataquality/internal/csv"
	"github.com/JonMunkholm/dataquality/internal/logging"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string                 `json:"status"`
	States int                    `json:"states"`
	Zips   int                    `json:"zips"`
	Scans  core.ScanLimiterStatus `json:"scans"`
}

// StatesResponse is returned by GET /api/reference/states.
type StatesResponse struct {
	Count  int               `json:"count"`
	States map[string]string `json:"states"`
	Zips   map[string]int    `json:"zips_per_state"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		States: s.states.Len(),
		Zips:   s.zips.Len(),
		Scans:  s.limiter.Status(),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	perState := make(map[string]int)
	for _, code := range s.zips.States() {
		perState[code] = len(s.zips.Zips(code))
	}
	writeJSON(w, r, http.StatusOK, StatesResponse{
		Count:  s.states.Len(),
		States: s.states.Names(),
		Zips:   perState,
	})
}

// handleScan validates the uploaded table and returns the report.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx, table, ok := s.prepare(w, r)
	if !ok {
		return
	}

	report, err := s.scan(ctx, table, r)
	if err != nil {
		respondError(w, r.WithContext(ctx), err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// handleClean validates the uploaded table and returns it with canonical
// values. Counts travel in headers so the body stays plain CSV.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	ctx, table, ok := s.prepare(w, r)
	if !ok {
		return
	}

	report, err := s.scan(ctx, table, r)
	if err != nil {
		respondError(w, r.WithContext(ctx), err, statusFor(err))
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/csv; charset=utf-8")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": csv.OutputFileName}))
	h.Set("X-Run-ID", report.RunID)
	h.Set("X-Records-Total", strconv.Itoa(report.Records))
	h.Set("X-Anomalies-Total", strconv.Itoa(len(report.Anomalies)))
	w.WriteHeader(http.StatusOK)

	if err := csv.Write(w, table); err != nil {
		logging.FromContext(ctx).Error("write cleaned table", "error", err)
	}
}

// prepare assigns the run ID and reads the table. On failure the error
// response is already written.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (context.Context, *core.Table, bool) {
	ctx := core.ContextWithRunID(r.Context(), uuid.NewString())
	w.Header().Set("X-Run-ID", core.RunIDFromContext(ctx))

	table, err := s.readTable(r)
	if err != nil {
		respondError(w, r.WithContext(ctx), err, statusFor(err))
		return nil, nil, false
	}
	return ctx, table, true
}

// readTable parses the request body, or the "file" part of a multipart
// form, without buffering the whole upload first.
func (s *Server) readTable(r *http.Request) (*core.Table, error) {
	limit := s.cfg.Scan.MaxFileSize

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if r.Body == nil || r.Body == http.NoBody {
			return nil, errNoFile
		}
		return csv.Read(r.Body, limit)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errNoFile
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}
		defer part.Close()
		return csv.Read(part, limit)
	}
}

// scan runs one fresh Scanner under a limiter slot. The phone_format query
// parameter overrides the configured format.
func (s *Server) scan(ctx context.Context, table *core.Table, r *http.Request) (*core.Report, error) {
	format := s.phoneFormat
	if q := r.URL.Query().Get("phone_format"); q != "" {
		f, err := core.ParsePhoneFormat(q)
		if err != nil {
			return nil, err
		}
		format = f
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	s.metrics.ScanStarted()
	defer s.metrics.ScanFinished()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Scan.Timeout)
	defer cancel()

	scanner := core.NewScanner(s.states, s.zips,
		core.WithLogger(logging.FromContext(r.Context())),
		core.WithPhoneFormat(format),
		core.WithObserver(s.metrics),
	)
	return scanner.Scan(ctx, table)
}
