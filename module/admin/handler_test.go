package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler("boss", "s3cret").RegisterRoutes(r.Group("/admin"))
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	w := postLogin(newRouter(), `{"username":"boss","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	r := newRouter()
	for _, body := range []string{
		`{"username":"boss","password":"nope"}`,
		`{"username":"intruder","password":"s3cret"}`,
	} {
		if w := postLogin(r, body); w.Code != http.StatusUnauthorized {
			t.Errorf("body %s: status = %d, want 401", body, w.Code)
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	r := newRouter()
	for _, body := range []string{`{}`, `{"username":"boss"}`, `not json`} {
		if w := postLogin(r, body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}
