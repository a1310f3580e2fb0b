package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spacesedan/emotiflow/internal/analysis"
	"github.com/spacesedan/emotiflow/internal/models"
)

const emptyTextMessage = "text is required"

func (s *Server) handleAnalyze(c echo.Context) (err error) {
	defer recoverAnalysis(c, &err)

	var req models.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("invalid request body: %s", bindMessage(err)),
		})
	}

	result, err := s.analyzer.Analyze(c.Request().Context(), req.Text)
	if errors.Is(err, analysis.ErrEmptyText) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: emptyTextMessage})
	}
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewAnalyzeResponse(result))
}

func (s *Server) handleSelfTest(c echo.Context) (err error) {
	defer recoverAnalysis(c, &err)

	results, err := s.analyzer.SelfTest(c.Request().Context())
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(http.StatusOK, models.SelfTestResponse{TestResults: results})
}

func analysisError(c echo.Context, err error) error {
	slog.Error("[Server] Analysis failed",
		slog.String("path", c.Request().URL.Path),
		slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: fmt.Sprintf("analysis error: %s", err.Error()),
	})
}

// recoverAnalysis turns a panic inside an analysis handler into a 500 carrying
// the panic text.
func recoverAnalysis(c echo.Context, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = analysisError(c, fmt.Errorf("%v", r))
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
