package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dolceboy103/layoutgpt-backend/internal/feasibility"
	"github.com/dolceboy103/layoutgpt-backend/internal/report"
)

const maxBodyBytes = 1 << 20

// number accepts both JSON numbers and numeric strings, as form-driven
// clients send either.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("%q is not numeric", raw)
		}
		*n = number(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*n = number(value)
	return nil
}

type scenarioRequest struct {
	Name            string  `json:"name"`
	LandCost        *number `json:"land_cost"`
	ConversionCost  *number `json:"conversion_cost"`
	DevCost         *number `json:"dev_cost"`
	DevelopmentCost *number `json:"development_cost"`
	MarketRate      *number `json:"market_rate"`
	LandAreaAcres   *number `json:"land_area_acres"`
	PlotSizeSqft    *number `json:"plot_size_sqft"`
}

type scenariosRequest struct {
	Scenarios *[]scenarioRequest `json:"scenarios"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := s.engine.Evaluate(req.toInput())
	if err != nil {
		s.respondEvaluationError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "ROI calculation completed successfully",
		Data:    report.Build(result),
	})
}

func (s *server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var req scenariosRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Scenarios == nil {
		respondError(w, http.StatusBadRequest, "scenarios array is required", "scenarios")
		return
	}

	inputs := make([]feasibility.ScenarioInput, len(*req.Scenarios))
	for i, sr := range *req.Scenarios {
		inputs[i] = sr.toInput()
	}

	cmp, err := s.engine.Compare(r.Context(), inputs)
	if err != nil {
		s.respondEvaluationError(w, err)
		return
	}

	for _, o := range cmp.Failed() {
		s.logger.Debug("scenario not evaluated", zap.String("scenario_id", o.ID), zap.Error(o.Err))
	}

	respondJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Scenario comparison completed successfully",
		Data:    report.BuildComparison(cmp),
	})
}

// toInput truncates a fractional plot size the way integer parsing of form
// input does; everything else is validated by the engine.
func (req scenarioRequest) toInput() feasibility.ScenarioInput {
	in := feasibility.ScenarioInput{
		Name:            strings.TrimSpace(req.Name),
		LandCost:        req.LandCost.value(),
		ConversionCost:  req.ConversionCost.value(),
		DevelopmentCost: req.DevCost.value(),
		MarketRate:      req.MarketRate.value(),
		LandAreaAcres:   req.LandAreaAcres.value(),
	}
	if req.DevCost == nil {
		in.DevelopmentCost = req.DevelopmentCost.value()
	}

	size := math.Trunc(req.PlotSizeSqft.value())
	size = math.Max(math.Min(size, math.MaxInt32), math.MinInt32)
	in.PlotSizeSqft = int(size)

	return in
}

func (n *number) value() float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func (s *server) respondEvaluationError(w http.ResponseWriter, err error) {
	var inputErr *feasibility.InputError
	switch {
	case errors.As(err, &inputErr):
		respondError(w, http.StatusBadRequest, err.Error(), inputErr.Field)
	case errors.Is(err, feasibility.ErrInvalidInput), errors.Is(err, feasibility.ErrEmptyBatch):
		respondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, feasibility.ErrDegenerateScenario):
		respondError(w, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		s.logger.Error("evaluation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to calculate ROI", "")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message, field string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message, Field: field})
}
