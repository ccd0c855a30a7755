package iqtest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nsip/iqtest-lite/internal/util"
)

// api info
func (s *IQTestService) rootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "IQ Test Lite API",
		"version": Version,
		"endpoints": map[string]string{
			"test_items": "/api/test-items",
			"submit":     "/api/submit",
			"health":     "/api/health",
		},
	})
}

// pingable method to know we're up
func (s *IQTestService) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// returns the test items without their answer key
func (s *IQTestService) buildItemsHandler() echo.HandlerFunc {

	repo := s.repo

	return func(c echo.Context) error {
		items, err := PublicItems(repo)
		if err != nil {
			c.Logger().Error("items error: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
	}
}

// scores a submission of answers
// requires a json body of the form
// {"answers": [{"question_id": 1, "selected_option": 2}, ...]}
func (s *IQTestService) buildSubmitHandler() echo.HandlerFunc {

	repo := s.repo

	return func(c echo.Context) error {
		defer util.TimeTrack(time.Now(), "submit")

		sub := &Submission{}
		if err := c.Bind(sub); err != nil {
			c.Logger().Warn("bind error: ", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid submission body")
		}

		result, err := ScoreSubmission(repo, *sub)
		if err != nil {
			c.Logger().Error("scoring error: ", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		return c.JSON(http.StatusOK, result)
	}
}
