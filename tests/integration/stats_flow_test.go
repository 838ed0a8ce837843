package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestStatsFlow_SummaryAndBreakdowns(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "stats@test.com", "password123")
	wsID, _ := app.createWorkspace(t, token, "Budget")

	seed := func(txType, category string, amount int64) {
		body := fmt.Sprintf(`{"workspace_id":%.0f,"type":%q,"amount":%d,"description":"seed","category":%q}`,
			wsID, txType, amount, category)
		rec := app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
		}
	}
	seed("income", "Salary", 500000)
	seed("expense", "Food", 30000)
	seed("expense", "Housing", 90000)
	seed("expense", "Food", 20000)
	app.Cache.Wait()

	// Summary.
	rec := app.request("GET", fmt.Sprintf("/api/v1/workspaces/%.0f/stats/summary", wsID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_income"].(float64) != 500000 {
		t.Errorf("expected income 500000, got %v", summary["total_income"])
	}
	if summary["total_expense"].(float64) != 140000 {
		t.Errorf("expected expense 140000, got %v", summary["total_expense"])
	}
	if summary["balance"].(float64) != 360000 {
		t.Errorf("expected balance 360000, got %v", summary["balance"])
	}

	// Category breakdown, largest first.
	rec = app.request("GET", fmt.Sprintf("/api/v1/workspaces/%.0f/stats/categories?type=expense", wsID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories failed: %d %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["category"] != "Housing" || first["total"].(float64) != 90000 {
		t.Errorf("expected Housing 90000 first, got %v", first)
	}

	// Missing type is rejected.
	rec = app.request("GET", fmt.Sprintf("/api/v1/workspaces/%.0f/stats/categories", wsID), "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a type, got %d", rec.Code)
	}

	// Monthly series: default six buckets, current month holds the totals.
	rec = app.request("GET", fmt.Sprintf("/api/v1/workspaces/%.0f/stats/monthly", wsID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("monthly failed: %d %s", rec.Code, rec.Body.String())
	}
	months := parseJSON(t, rec)["months"].([]interface{})
	if len(months) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(months))
	}
	current := months[5].(map[string]interface{})
	if current["income"].(float64) != 500000 || current["expense"].(float64) != 140000 {
		t.Errorf("expected current month 500000/140000, got %v", current)
	}
}

func TestStatsFlow_NonMemberForbidden(t *testing.T) {
	app := setupApp(t)

	ownerToken, _, _ := app.registerUser(t, "o@test.com", "password123")
	outsiderToken, _, _ := app.registerUser(t, "x@test.com", "password123")
	wsID, _ := app.createWorkspace(t, ownerToken, "Private")

	rec := app.request("GET", fmt.Sprintf("/api/v1/workspaces/%.0f/stats/summary", wsID), "", outsiderToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-members, got %d", rec.Code)
	}
}
