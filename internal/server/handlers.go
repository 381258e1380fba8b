package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
	"fjacquet/finflow/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.NewErrorResponse(message))
}

// statusFor maps a use-case error to an HTTP status. Empty statements and
// missing history are reported as regular outcomes.
func statusFor(err error) int {
	var (
		invalid *service.InvalidRequestError
		format  *parsererror.InvalidFormatError
	)
	switch {
	case errors.Is(err, parsererror.ErrNoTransactions), errors.Is(err, service.ErrNoHistory):
		return http.StatusOK
	case errors.As(err, &invalid), errors.As(err, &format):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": HealthMessage})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := s.loggerFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		log.WithError(err).Warn("Rejected upload form")
		writeError(w, http.StatusBadRequest, "Invalid upload form.")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	userID := strings.TrimSpace(r.FormValue("user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	log.Info("Received statement upload",
		logging.F(logging.FieldUserID, userID), logging.F(logging.FieldFile, header.Filename))

	resp, err := s.api.Ingest(r.Context(), userID, file)
	if err != nil {
		writeJSON(w, statusFor(err), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	log := s.loggerFrom(r.Context())

	req, err := decodePredictRequest(r)
	if err != nil {
		log.WithError(err).Warn("Rejected predict request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.api.Analyze(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.WithError(err).Error("Analysis failed", logging.F(logging.FieldUserID, req.UserID))
		}
		writeError(w, status, service.PublicMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodePredictRequest reads a JSON body or form fields. Omitted optional
// fields keep their defaults.
func decodePredictRequest(r *http.Request) (models.PredictRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		req := models.NewPredictRequest("")
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return models.PredictRequest{}, fmt.Errorf("invalid JSON body")
		}
		return req, nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return models.PredictRequest{}, fmt.Errorf("invalid form")
		}
	} else if err := r.ParseForm(); err != nil {
		return models.PredictRequest{}, fmt.Errorf("invalid form")
	}

	req := models.NewPredictRequest(strings.TrimSpace(r.FormValue("user_id")))
	req.JobTitle = r.FormValue("job_title")
	req.Education = r.FormValue("education")
	req.Employment = r.FormValue("employment")
	req.HasLoan = r.FormValue("has_loan")
	if v := r.FormValue("loan_type"); v != "" {
		req.LoanType = v
	}

	var err error
	if req.MonthlyIncome, err = formFloat(r, "monthly_income", 0, true); err != nil {
		return models.PredictRequest{}, err
	}
	if req.LoanTermMonths, err = formInt(r, "loan_term_months", 0); err != nil {
		return models.PredictRequest{}, err
	}
	if req.MonthlyEMI, err = formFloat(r, "monthly_emi_usd", 0, false); err != nil {
		return models.PredictRequest{}, err
	}
	if req.LoanInterestRatePct, err = formFloat(r, "loan_interest_rate_pct", 0, false); err != nil {
		return models.PredictRequest{}, err
	}
	if req.CreditScore, err = formInt(r, "credit_score", models.DefaultCreditScore); err != nil {
		return models.PredictRequest{}, err
	}
	return req, nil
}

func formFloat(r *http.Request, name string, fallback float64, required bool) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func formInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
