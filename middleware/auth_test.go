package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oh-crepe-api/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(a *Auth) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", a.AuthRequired(), func(c *gin.Context) {
		caller := GetCaller(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.ID, "email": caller.Email, "name": caller.Name, "role": caller.Role})
	})
	r.GET("/admin", a.AuthRequired(), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_CarriesClaims(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	r := newTestRouter(a)
	token, err := a.GenerateToken(&models.User{ID: 7, Email: "jane@ofos.com", Name: "Jane", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	w := do(r, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var body struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ID != 7 || body.Email != "jane@ofos.com" || body.Name != "Jane" || body.Role != "staff" {
		t.Errorf("caller = %+v", body)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestAuthRequired_Rejects(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	r := newTestRouter(a)

	expired := NewAuth("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})

	forged, _ := NewAuth("other-secret", time.Hour).GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})

	cases := map[string]string{
		"missing": "",
		"garbage": "not-a-jwt",
		"expired": old,
		"forged":  forged,
	}
	for name, token := range cases {
		w := do(r, "/me", token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == nil || body["message"] == nil {
			t.Errorf("%s: error envelope missing: %s", name, w.Body)
		}
	}
}

func TestRoleRequired(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	r := newTestRouter(a)
	customer, _ := a.GenerateToken(&models.User{ID: 2, Role: models.RoleCustomer})
	admin, _ := a.GenerateToken(&models.User{ID: 3, Role: models.RoleAdmin})

	if w := do(r, "/admin", customer); w.Code != http.StatusForbidden {
		t.Errorf("customer on admin route: %d, want 403", w.Code)
	}
	if w := do(r, "/admin", admin); w.Code != http.StatusNoContent {
		t.Errorf("admin on admin route: %d, want 204", w.Code)
	}
}
