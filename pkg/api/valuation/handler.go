// Package valuation exposes the valuation pipeline over HTTP: fetch facts,
// classify, normalize, value, cross-check and build the sensitivity grid.
package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/classify"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/market"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/sensitivity"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/store"
	coreval "github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/trace"
)

// FactsSource supplies base-year facts for a ticker. Satisfied by
// edgar.Fetcher; stubbed in tests.
type FactsSource interface {
	FetchBaseYearFacts(ctx context.Context, ticker string) (baseyear.RawFacts, error)
}

// RunStore persists completed runs and serves them back, newest first.
// Satisfied by store.ValuationRepo.
type RunStore interface {
	Save(ctx context.Context, ticker string, base *baseyear.BaseYearRecord, a assumption.Assumptions, result *coreval.ValuationResult) (string, error)
	Recent(ctx context.Context, ticker string, limit int) ([]store.RunRecord, error)
}

// Handler serves the valuation endpoints.
type Handler struct {
	source FactsSource
	market market.MarketData
	repo   RunStore
}

// NewHandler wires the handler. repo may be nil when no database is
// configured; valuations still run, they just are not persisted.
func NewHandler(source FactsSource, md market.MarketData, repo RunStore) *Handler {
	return &Handler{source: source, market: md, repo: repo}
}

// ValuationRequest is the caller's scenario for one run. A zero WACC asks
// the server to derive it from CAPM using the company's beta.
type ValuationRequest struct {
	Ticker              string    `json:"ticker"`
	GrowthRate          float64   `json:"growth_rate"`
	GrowthSchedule      []float64 `json:"growth_schedule,omitempty"`
	WACC                float64   `json:"wacc,omitempty"`
	TerminalGrowth      float64   `json:"terminal_growth"`
	Horizon             int       `json:"horizon,omitempty"`
	Policy              string    `json:"policy,omitempty"`
	SalesToCapitalRatio float64   `json:"sales_to_capital_ratio,omitempty"`
	ReturnOnCapital     float64   `json:"return_on_capital,omitempty"`
	IncludeSensitivity  bool      `json:"include_sensitivity,omitempty"`
}

// ValuationResponse bundles everything the dashboard renders.
type ValuationResponse struct {
	Ticker      string                   `json:"ticker"`
	CompanyType string                   `json:"company_type"`
	BaseYear    *baseyear.BaseYearRecord `json:"base_year"`
	Rates       coreval.WACCResult       `json:"rates"`
	Result      *coreval.ValuationResult `json:"result"`
	Sensitivity *sensitivity.Grid        `json:"sensitivity,omitempty"`
	RunID       string                   `json:"run_id,omitempty"`
}

// HandleReport runs the full pipeline for POST /api/valuation/report.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(req.Ticker)

	ctx, span := trace.StartSpan(r.Context(), "valuation.report")
	defer span.End()

	// 1. Facts (cache-backed)
	facts, err := h.source.FetchBaseYearFacts(ctx, ticker)
	if err != nil {
		slog.Error("facts fetch failed", "ticker", ticker, "error", err)
		http.Error(w, fmt.Sprintf("could not fetch filings for %s: %v", ticker, err), http.StatusBadGateway)
		return
	}

	if facts.Beta == 0 {
		facts.Beta = h.market.DefaultBeta
	}

	// 2. FCFF is undefined for financial institutions
	companyType := classify.Classify(facts)
	if companyType == classify.Financial {
		http.Error(w, fmt.Sprintf("%s looks like a financial institution; FCFF valuation does not apply", ticker), http.StatusUnprocessableEntity)
		return
	}

	// 3. Normalize
	base, err := baseyear.Normalize(facts)
	if err != nil {
		var insufficient *baseyear.InsufficientDataError
		if errors.As(err, &insufficient) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// 4. Assumptions; derive the discount rate from CAPM when not given
	var debtToEquity float64
	if base.CurrentPrice > 0 && base.Shares > 0 && base.NetDebt > 0 {
		debtToEquity = base.NetDebt / (base.CurrentPrice * base.Shares)
	}
	rates := coreval.CalculateWACC(coreval.WACCInput{
		Beta:              base.Beta,
		RiskFreeRate:      h.market.RiskFreeRate,
		EquityRiskPremium: h.market.EquityRiskPremium,
		PreTaxCostOfDebt:  h.market.PreTaxCostOfDebt,
		TaxRate:           base.TaxRate,
		DebtToEquityRatio: debtToEquity,
	})

	a := assumption.Assumptions{
		GrowthRate:          req.GrowthRate,
		GrowthSchedule:      req.GrowthSchedule,
		WACC:                req.WACC,
		TerminalGrowth:      req.TerminalGrowth,
		Horizon:             req.Horizon,
		Policy:              assumption.ReinvestmentPolicy(req.Policy),
		SalesToCapitalRatio: req.SalesToCapitalRatio,
		ReturnOnCapital:     req.ReturnOnCapital,
	}.WithDefaults()
	if a.WACC == 0 {
		a.WACC = rates.WACC
	}

	// 5. Value
	result, err := coreval.RunValuation(base, a, rates.CostOfEquity)
	if err != nil {
		status := http.StatusInternalServerError
		var invalid *assumption.InvalidAssumptionError
		var undefinedTV *coreval.TerminalValueUndefinedError
		if errors.As(err, &invalid) || errors.As(err, &undefinedTV) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	resp := ValuationResponse{
		Ticker:      ticker,
		CompanyType: string(companyType),
		BaseYear:    base,
		Rates:       rates,
		Result:      result,
	}

	// 6. Sensitivity surface on request
	if req.IncludeSensitivity {
		waccs, growths := sensitivity.DefaultAxes(a.WACC, a.TerminalGrowth)
		grid, err := sensitivity.Build(base, a, waccs, growths)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp.Sensitivity = grid
	}

	// 7. Persist, best-effort
	if h.repo != nil {
		runID, err := h.repo.Save(ctx, ticker, base, a, result)
		if err != nil {
			slog.Warn("failed to persist valuation run", "ticker", ticker, "error", err)
		} else {
			resp.RunID = runID
		}
	}

	slog.Info("valuation served",
		"ticker", ticker,
		"enterprise_value", result.EnterpriseValue,
		"fair_value", result.FairValuePerShare.String(),
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleRuns serves past runs for a ticker, newest first:
// GET /api/valuation/runs?ticker=AAPL&limit=5.
func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.repo == nil {
		http.Error(w, "run persistence is not configured", http.StatusServiceUnavailable)
		return
	}

	ticker := strings.ToUpper(r.URL.Query().Get("ticker"))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.repo.Recent(r.Context(), ticker, limit)
	if err != nil {
		slog.Error("failed to load valuation runs", "ticker", ticker, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.RunRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// HandleHealth answers GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
