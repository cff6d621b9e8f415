// ABOUTME: MCP tool handler implementations for the reference server
// ABOUTME: Every call is logged to the search_queries table with timing
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"

	"github.com/pedbot/nelsonref/internal/models"
	"github.com/pedbot/nelsonref/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage     *storage.Storage
	searchLimit int
}

// logQuery records a tool call in the search log. Logging failures are
// warnings; the lookup result still goes back to the caller.
func (h *Handlers) logQuery(queryText, queryType string, results int, started time.Time) {
	q, err := models.NewSearchQuery(nil, queryText, queryType)
	if err != nil {
		log.Printf("Warning: search log entry invalid: %v", err)
		return
	}
	q.ResultsCount = results
	q.ContextData["request_id"] = uuid.New().String()
	elapsed := decimal.NewFromFloat(time.Since(started).Seconds()).Round(3)
	q.ResponseTime = &elapsed

	if err := h.storage.Queries.Log(q); err != nil {
		log.Printf("Warning: failed to log search query: %v", err)
	}
}

func resultJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// LookupDrugDosage handles the lookup_drug_dosage tool
func (h *Handlers) LookupDrugDosage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()

	drugName, err := request.RequireString("drug_name")
	if err != nil {
		return mcp.NewToolResultError("drug_name argument is required and must be a string"), nil
	}
	weight, err := request.RequireFloat("weight_kg")
	if err != nil {
		return mcp.NewToolResultError("weight_kg argument is required and must be a number"), nil
	}

	query := models.DrugDosageQuery{
		DrugName:   drugName,
		WeightKg:   decimal.NewFromFloat(weight).Round(2),
		Indication: request.GetString("indication", ""),
	}
	if age := request.GetInt("age_months", -1); age >= 0 {
		query.AgeMonths = &age
	}

	drug, dosages, err := h.storage.Dosages.FindForQuery(h.storage.Drugs, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dosage lookup failed: %v", err)), nil
	}

	h.logQuery(drugName, "drug_lookup", len(dosages), started)

	if drug == nil {
		return mcp.NewToolResultText(fmt.Sprintf("No drug found with generic name %q", drugName)), nil
	}
	return resultJSON(map[string]any{
		"drug":    drug,
		"dosages": dosages,
	})
}

// SearchProtocols handles the search_protocols tool
func (h *Handlers) SearchProtocols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()

	term, err := request.RequireString("search_term")
	if err != nil {
		return mcp.NewToolResultError("search_term argument is required and must be a string"), nil
	}

	query := models.EmergencyProtocolQuery{
		SearchTerm:   term,
		AgeGroup:     request.GetString("age_group", ""),
		ProtocolType: models.EmergencyType(request.GetString("protocol_type", "")),
	}

	protocols, err := h.storage.Protocols.Search(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("protocol search failed: %v", err)), nil
	}
	if len(protocols) > h.searchLimit {
		protocols = protocols[:h.searchLimit]
	}

	h.logQuery(term, "emergency", len(protocols), started)

	return resultJSON(map[string]any{
		"count":     len(protocols),
		"protocols": protocols,
	})
}

// FindMilestones handles the find_milestones tool
func (h *Handlers) FindMilestones(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()

	query := models.MilestoneQuery{
		Domain:     models.DevelopmentalDomain(request.GetString("domain", "")),
		SearchTerm: request.GetString("search_term", ""),
	}
	if age := request.GetInt("age_months", -1); age >= 0 {
		query.AgeMonths = &age
	}

	milestones, err := h.storage.Milestones.Find(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("milestone search failed: %v", err)), nil
	}
	if len(milestones) > h.searchLimit {
		milestones = milestones[:h.searchLimit]
	}

	logText := query.SearchTerm
	if logText == "" && query.Domain != "" {
		logText = string(query.Domain)
	}
	if logText == "" && query.AgeMonths != nil {
		logText = fmt.Sprintf("age %d months", *query.AgeMonths)
	}
	h.logQuery(logText, "milestone", len(milestones), started)

	return resultJSON(map[string]any{
		"count":      len(milestones),
		"milestones": milestones,
	})
}

// GrowthPercentile handles the growth_percentile tool
func (h *Handlers) GrowthPercentile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()

	chartType, err := request.RequireString("chart_type")
	if err != nil {
		return mcp.NewToolResultError("chart_type argument is required and must be a string"), nil
	}
	sex, err := request.RequireString("sex")
	if err != nil {
		return mcp.NewToolResultError("sex argument is required and must be a string"), nil
	}
	ageMonths, err := request.RequireInt("age_months")
	if err != nil {
		return mcp.NewToolResultError("age_months argument is required and must be a number"), nil
	}
	measurement, err := request.RequireFloat("measurement_value")
	if err != nil {
		return mcp.NewToolResultError("measurement_value argument is required and must be a number"), nil
	}

	query := models.GrowthChartQuery{
		ChartType:        chartType,
		Sex:              models.Sex(sex),
		AgeMonths:        ageMonths,
		MeasurementValue: decimal.NewFromFloat(measurement).Round(2),
	}
	if err := query.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	chart, err := h.storage.Charts.Lookup(query.ChartType, query.Sex)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("growth chart lookup failed: %v", err)), nil
	}

	if chart == nil {
		h.logQuery(chartType, "growth_chart", 0, started)
		return mcp.NewToolResultText(fmt.Sprintf("No growth chart found for %q (%s)", chartType, sex)), nil
	}

	// Nearest stored point per percentile curve; no interpolation
	curves := map[string]models.GrowthPoint{}
	for label := range chart.PercentileData {
		if point, ok := chart.NearestPoint(label, float64(query.AgeMonths)); ok {
			curves[label] = point
		}
	}

	h.logQuery(chartType, "growth_chart", len(curves), started)

	return resultJSON(map[string]any{
		"chart_type":        chart.ChartType,
		"sex":               chart.Sex,
		"source":            chart.Source,
		"version":           chart.Version,
		"age_months":        query.AgeMonths,
		"measurement_value": query.MeasurementValue,
		"percentiles":       curves,
	})
}

// SymptomInfo handles the symptom_info tool
func (h *Handlers) SymptomInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	started := time.Now()

	name, err := request.RequireString("symptom_name")
	if err != nil {
		return mcp.NewToolResultError("symptom_name argument is required and must be a string"), nil
	}

	query := models.SymptomQuery{SymptomName: name}
	if age := request.GetInt("age_months", -1); age >= 0 {
		query.AgeMonths = &age
	}

	symptoms, err := h.storage.Symptoms.Search(query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("symptom lookup failed: %v", err)), nil
	}

	h.logQuery(name, "symptom", len(symptoms), started)

	return resultJSON(map[string]any{
		"count":    len(symptoms),
		"symptoms": symptoms,
	})
}
