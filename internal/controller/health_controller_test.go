package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slp_caseload_backend/pkg/notify"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func healthComponents(t *testing.T, publisher *notify.Publisher) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	router := gin.New()
	router.GET("/health", NewHealthController(db, nil, publisher).HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			Components map[string]any `json:"components"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Data.Components
}

func TestHealthCheckReportsMessagingDownWhenDisconnected(t *testing.T) {
	components := healthComponents(t, &notify.Publisher{})

	if got := components["database"]; got != "up" {
		t.Errorf("database = %v, want up", got)
	}
	if got := components["messaging"]; got != "down" {
		t.Errorf("messaging = %v, want down", got)
	}
}

func TestHealthCheckOmitsMessagingWhenUnconfigured(t *testing.T) {
	components := healthComponents(t, nil)

	if _, ok := components["messaging"]; ok {
		t.Error("messaging component present without a publisher")
	}
}
