package handler

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myhr/portal-gateway/internal/core/ports"
)

// ProxyHandler relays the HR resource endpoints (departments, payroll,
// leave, attendance, self-assessments, meeting slots, user approval)
// upstream. The gateway's route table mirrors the upstream paths one to one,
// so the request path is forwarded as-is with the session's cookies and CSRF
// token attached, and every failure comes back through the one normalized
// error path.
type ProxyHandler struct {
	client ports.HRClient
	log    zerolog.Logger
}

func NewProxyHandler(client ports.HRClient, log zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{client: client, log: log}
}

// Forward handles any method on a mirrored resource route.
func (h *ProxyHandler) Forward(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	req := c.Request()

	var body []byte
	if req.Body != nil {
		body, err = io.ReadAll(io.LimitReader(req.Body, maxRequestBytes))
		if err != nil {
			return echo.NewHTTPError(400, "invalid payload")
		}
	}

	result, err := h.client.Forward(req.Context(), sess, req.Method, req.URL.Path, c.QueryParams(), body)
	if err != nil {
		return err
	}

	if !result.OK {
		h.log.Debug().
			Int("status", result.StatusCode).
			Str("path", req.URL.Path).
			Str("detail", result.ErrorMessage).
			Msg("upstream rejected resource call")
		return c.JSON(result.StatusCode, map[string]string{"error": result.ErrorMessage})
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(result.StatusCode, contentType, result.Body)
}
