package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TestErrorHandlerStatuses(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "FDP not found"), 404, "NOT_FOUND", "FDP not found"},
		{"wrapped fiber error", fmt.Errorf("load: %w", fiber.NewError(fiber.StatusBadGateway, "gateway down")), 502, "UPSTREAM_ERROR", "gateway down"},
		{"duplicate key", gorm.ErrDuplicatedKey, 409, "CONFLICT", ""},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR", "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.ErrorCode != tc.code {
				t.Errorf("body = %+v", body)
			}
			if tc.message != "" && body.Message != tc.message {
				t.Errorf("message = %q, want %q", body.Message, tc.message)
			}
		})
	}
}
