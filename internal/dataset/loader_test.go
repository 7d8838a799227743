package dataset

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

const sampleCSV = `title,rating,calories,protein,fat,sodium,summer,winter,breakfast,low cal,len_ingredients,len_directions
Berry Smoothie,4.5,300,10,5,120,1,0,1,1,5,2
Oatmeal,4.0,250,8,4,90,0,1,1,1,4,3
Beef Stew,3.75,800,45,30,1100,0,1,0,0,12,6
Broken Row,,300,10,5,120,1,0,1,0,5,2
Mystery Dish,2.5,nan,1,1,1,1,0,0,0,3,1
`

// setupTestFiles writes a plain and a gzipped copy of data and returns their paths
func setupTestFiles(t *testing.T, data string) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	plain := filepath.Join(tmpDir, "dishes.csv")
	if err := os.WriteFile(plain, []byte(data), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(data)); err != nil {
		t.Fatalf("failed to gzip test data: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	gzipped := filepath.Join(tmpDir, "dishes.csv.gz")
	if err := os.WriteFile(gzipped, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to create gzip test file: %v", err)
	}

	return plain, gzipped
}

func TestParse(t *testing.T) {
	dishes, st, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if st.Rows != 5 || st.Loaded != 3 || st.Skipped != 2 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if len(dishes) != 3 {
		t.Fatalf("expected 3 dishes, got %d", len(dishes))
	}

	smoothie := dishes[0]
	if smoothie.Title != "Berry Smoothie" || smoothie.Rating != 4.5 {
		t.Errorf("unexpected first dish: %+v", smoothie)
	}
	if smoothie.Amount(models.NutrientCalories) != 300 || smoothie.Amount(models.NutrientSodium) != 120 {
		t.Errorf("unexpected nutrients: %v", smoothie.Nutrients)
	}
	if !smoothie.Summer || smoothie.Winter || !smoothie.Breakfast || !smoothie.LowCal {
		t.Errorf("unexpected flags: %+v", smoothie)
	}
	if smoothie.IngredientCount != 5 || smoothie.DirectionCount != 2 {
		t.Errorf("unexpected lengths: %d/%d", smoothie.IngredientCount, smoothie.DirectionCount)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no rating", data: "title,calories,protein,fat,sodium\nA,1,1,1,1\n"},
		{name: "no sodium", data: "title,rating,calories,protein,fat\nA,1,1,1,1\n"},
		{name: "empty input", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.data))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("expected ErrMissingColumn, got: %v", err)
			}
		})
	}
}

func TestParse_LowCalUnderscoreHeader(t *testing.T) {
	data := "Title,Rating,Calories,Protein,Fat,Sodium,low_cal\nSalad,3,100,2,1,50,1\n"
	dishes, _, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(dishes) != 1 || !dishes[0].LowCal {
		t.Errorf("expected one low-cal dish, got %+v", dishes)
	}
}

func TestLoader_Load(t *testing.T) {
	t.Run("plain and gzipped files concatenate in order", func(t *testing.T) {
		plain, gzipped := setupTestFiles(t, sampleCSV)

		loader := NewLoader(nil)
		dishes, err := loader.Load(context.Background(), []string{plain, gzipped})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if len(dishes) != 6 {
			t.Fatalf("expected 6 dishes, got %d", len(dishes))
		}
		for i, dish := range dishes {
			if dish.ID != int64(i+1) {
				t.Errorf("dish %d: expected ID %d, got %d", i, i+1, dish.ID)
			}
		}
		if dishes[3].Title != "Berry Smoothie" {
			t.Errorf("expected second source to start at index 3, got %q", dishes[3].Title)
		}

		stats := loader.Stats()
		if len(stats) != 2 || stats[1].Source != gzipped || stats[1].Skipped != 2 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})

	t.Run("http source", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleCSV))
		}))
		defer server.Close()

		dishes, err := NewLoader(nil).Load(context.Background(), []string{server.URL + "/dishes.csv"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(dishes) != 3 {
			t.Errorf("expected 3 dishes, got %d", len(dishes))
		}
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewLoader(nil).Load(context.Background(), []string{server.URL})
		if err == nil {
			t.Error("expected error for 404 source, got nil")
		}
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := NewLoader(nil).Load(context.Background(), nil)
		if !errors.Is(err, ErrNoSources) {
			t.Errorf("expected ErrNoSources, got: %v", err)
		}
	})

	t.Run("one failing source fails the load", func(t *testing.T) {
		plain, _ := setupTestFiles(t, sampleCSV)

		loader := NewLoader(nil)
		_, err := loader.Load(context.Background(), []string{plain, "/non/existent/file.csv"})
		if err == nil {
			t.Error("expected error for non-existent file, got nil")
		}
		if len(loader.Stats()) != 0 {
			t.Error("expected stats to stay empty after a failed load")
		}
	})
}
