package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/levi3112/Dishes-Recommendation-API/internal/config"
	"github.com/levi3112/Dishes-Recommendation-API/internal/middleware"
	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
	"github.com/levi3112/Dishes-Recommendation-API/pkg/logger"
)

const commandCSV = `title,rating,calories,protein,fat,sodium,summer,winter,breakfast,low cal,len_ingredients,len_directions
Berry Smoothie,5,600,40,20,600,1,0,1,0,5,2
Oatmeal,4,600,40,20,600,1,0,1,0,4,3
Pancakes,3,600,40,20,600,1,0,1,0,6,2
Omelette,2,600,40,20,600,1,0,1,0,3,1
Toast,1,600,40,20,600,1,0,1,0,2,1
`

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func testDishes() []models.Dish {
	dish := func(id int64, title string, rating float64) models.Dish {
		return models.Dish{
			ID:     id,
			Title:  title,
			Rating: rating,
			Nutrients: map[string]float64{
				models.NutrientCalories: 600,
				models.NutrientProtein:  40,
				models.NutrientFat:      20,
				models.NutrientSodium:   600,
			},
			Summer:    true,
			Breakfast: true,
		}
	}
	return []models.Dish{
		dish(1, "Berry Smoothie", 5),
		dish(2, "Oatmeal", 4),
		dish(3, "Pancakes", 3),
	}
}

func TestRouter_Routes(t *testing.T) {
	cfg := loadTestConfig(t)
	app := newApplication(cfg, logger.New("error"), testDishes())
	r := app.router()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "home", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "list dishes", method: http.MethodGet, path: "/api/dish", wantStatus: http.StatusOK},
		{name: "get dish", method: http.MethodGet, path: "/api/dish/2", wantStatus: http.StatusOK},
		{name: "missing dish", method: http.MethodGet, path: "/api/dish/99", wantStatus: http.StatusNotFound},
		{name: "recommend", method: http.MethodPost, path: "/api/recommend", wantStatus: http.StatusOK},
		{name: "recommend alias", method: http.MethodPost, path: "/recommend", body: `{"number_of_dishes": 2}`, wantStatus: http.StatusOK},
		{name: "recommend custom", method: http.MethodPost, path: "/api/recommend/custom", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_AuthProtectsRecommendations(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Auth.Enabled = true
	cfg.Auth.APIKeys = []string{"secret"}
	r := newApplication(cfg, logger.New("error"), testDishes()).router()

	tests := []struct {
		name       string
		method     string
		path       string
		apiKey     string
		wantStatus int
	}{
		{name: "catalog stays public", method: http.MethodGet, path: "/api/dish", wantStatus: http.StatusOK},
		{name: "missing key", method: http.MethodPost, path: "/api/recommend", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", method: http.MethodPost, path: "/recommend", apiKey: "nope", wantStatus: http.StatusForbidden},
		{name: "valid key", method: http.MethodPost, path: "/api/recommend/custom", apiKey: "secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.RateLimit.Requests = 1
	r := newApplication(cfg, logger.New("error"), testDishes()).router()

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/recommend", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("expected [200 429], got %v", codes)
	}
}

func TestRecommendCommand(t *testing.T) {
	loadTestConfig(t)

	path := filepath.Join(t.TempDir(), "dishes.csv")
	if err := os.WriteFile(path, []byte(commandCSV), 0644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"recommend",
		"--dataset", path,
		"--dishes", "2",
		"--candidates", "3",
		"--cal-lo", "1000",
		"--cal-up", "1300",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var rec models.Recommendation
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("failed to decode output %q: %v", out.String(), err)
	}

	want := [][]string{{"Berry Smoothie", "Oatmeal"}, {"Pancakes", "Omelette"}}
	if len(rec.Recommendations) != len(want) {
		t.Fatalf("expected %d rounds, got %v", len(want), rec.Recommendations)
	}
	for i := range want {
		if strings.Join(rec.Recommendations[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("round %d: expected %v, got %v", i, want[i], rec.Recommendations[i])
		}
	}
	if rec.Reason != "infeasible" {
		t.Errorf("expected reason infeasible, got %s", rec.Reason)
	}
	if rec.Profile != nil {
		t.Error("explicit bounds should not report a profile summary")
	}
}
