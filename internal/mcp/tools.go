// ABOUTME: MCP tool definitions and registration for the reference server
// ABOUTME: Exposes dosage, protocol, milestone, growth, and symptom lookups
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pedbot/nelsonref/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, searchLimit int) *Handlers {
	handlers := &Handlers{
		storage:     store,
		searchLimit: searchLimit,
	}

	// 1. lookup_drug_dosage - Weight-based dosing rules for a drug
	server.AddTool(mcp.Tool{
		Name:        "lookup_drug_dosage",
		Description: "Look up pediatric dosing rules for a drug by generic name, filtered by patient weight, age, and indication.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"drug_name": map[string]interface{}{
					"type":        "string",
					"description": "Generic drug name, e.g. 'Amoxicillin'",
				},
				"weight_kg": map[string]interface{}{
					"type":        "number",
					"description": "Patient weight in kilograms",
				},
				"age_months": map[string]interface{}{
					"type":        "number",
					"description": "Optional patient age in months",
				},
				"indication": map[string]interface{}{
					"type":        "string",
					"description": "Optional indication to filter dosing rules",
				},
			},
			Required: []string{"drug_name", "weight_kg"},
		},
	}, handlers.LookupDrugDosage)

	// 2. search_protocols - Emergency protocol search
	server.AddTool(mcp.Tool{
		Name:        "search_protocols",
		Description: "Search emergency protocols by term, with optional protocol type and age group filters. Results come back highest priority first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"search_term": map[string]interface{}{
					"type":        "string",
					"description": "Term matched against protocol names and keywords",
				},
				"protocol_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional type: neonatal_resuscitation, anaphylaxis, cardiac_arrest, respiratory_distress, seizures, shock, poisoning",
				},
				"age_group": map[string]interface{}{
					"type":        "string",
					"description": "Optional age group, e.g. 'neonate', 'infant', 'child', 'adolescent'",
				},
			},
			Required: []string{"search_term"},
		},
	}, handlers.SearchProtocols)

	// 3. find_milestones - Developmental milestone lookup
	server.AddTool(mcp.Tool{
		Name:        "find_milestones",
		Description: "Find developmental milestones by age in months, developmental domain, or search term. At least one filter is required.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"age_months": map[string]interface{}{
					"type":        "number",
					"description": "Age in months; matches milestones whose typical range contains it",
				},
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Optional domain: gross_motor, fine_motor, language, cognitive, social_emotional, adaptive",
				},
				"search_term": map[string]interface{}{
					"type":        "string",
					"description": "Optional term matched against milestone text",
				},
			},
		},
	}, handlers.FindMilestones)

	// 4. growth_percentile - Locate a measurement on a growth chart
	server.AddTool(mcp.Tool{
		Name:        "growth_percentile",
		Description: "Place a measurement on a growth chart: returns the stored percentile curve values nearest the given age.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"chart_type": map[string]interface{}{
					"type":        "string",
					"description": "Chart type, e.g. 'weight-for-age', 'height-for-age', 'BMI-for-age'",
				},
				"sex": map[string]interface{}{
					"type":        "string",
					"description": "male, female, or all",
				},
				"age_months": map[string]interface{}{
					"type":        "number",
					"description": "Age in months",
				},
				"measurement_value": map[string]interface{}{
					"type":        "number",
					"description": "Measured value to place on the chart",
				},
			},
			Required: []string{"chart_type", "sex", "age_months", "measurement_value"},
		},
	}, handlers.GrowthPercentile)

	// 5. symptom_info - Symptom reference lookup
	server.AddTool(mcp.Tool{
		Name:        "symptom_info",
		Description: "Look up a symptom by name or synonym: red flags, common and urgent diagnoses, assessment questions, and exam findings.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symptom_name": map[string]interface{}{
					"type":        "string",
					"description": "Symptom name or synonym, e.g. 'fever'",
				},
				"age_months": map[string]interface{}{
					"type":        "number",
					"description": "Optional patient age in months",
				},
			},
			Required: []string{"symptom_name"},
		},
	}, handlers.SymptomInfo)

	return handlers
}
