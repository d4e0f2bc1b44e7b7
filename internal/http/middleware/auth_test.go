package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskhub_backend/internal/service"
)

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		id := c.GetInt64("user_id")
		c.JSON(200, gin.H{"id": id})
	})

	token, err := service.GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, 200},
		{"missing header", "", 401},
		{"not bearer", "Basic abc", 401},
		{"garbage token", "Bearer not.a.jwt", 401},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: status = %d; want %d", tc.name, rec.Code, tc.want)
		}
	}
}
