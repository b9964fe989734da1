package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"fdp_backend/internals/configs"
	adminService "fdp_backend/internals/features/admin/service"
	helper "fdp_backend/internals/helpers"
)

func TestAuthAdmin(t *testing.T) {
	svc := adminService.NewAuthService(configs.Auth{JWTSecret: "k", AdminEmail: "a@x.com", AdminPassword: "pw"})
	tok, err := svc.Login("a@x.com", "pw")
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/admin", AuthAdmin(svc), func(c *fiber.Ctx) error {
		return c.SendString(AdminEmail(c))
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"bad scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", fiber.StatusUnauthorized},
		{"valid", "Bearer " + tok.AccessToken, fiber.StatusOK},
		{"lowercase scheme", "bearer  " + tok.AccessToken, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
