package controller

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"examflow/internal/cache"
	"examflow/internal/http/dto"
	"examflow/internal/http/resp"
)

// Proxy forwards any request outside the worker API through the
// transport. Origin-form requests go to the app origin.
func (h *Handler) Proxy(c *gin.Context) {
	target := h.target(c.Request)

	out := c.Request.Clone(c.Request.Context())
	out.URL = target
	out.Host = target.Host
	out.RequestURI = ""
	out.Header = cache.StorableHeader(c.Request.Header)

	res, err := h.transport.RoundTrip(out)
	if err != nil {
		h.log.Warn("proxy request failed", zap.String("url", target.String()), zap.Error(err))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Code: resp.CodeBadGateway, Message: "upstream unavailable"})
		return
	}
	defer res.Body.Close()

	header := c.Writer.Header()
	for name, values := range cache.StorableHeader(res.Header) {
		header[name] = values
	}
	c.Status(res.StatusCode)
	if _, err := io.Copy(c.Writer, res.Body); err != nil {
		h.log.Warn("proxy body copy failed", zap.String("url", target.String()), zap.Error(err))
	}
}

func (h *Handler) target(r *http.Request) *url.URL {
	if r.URL.IsAbs() {
		u := *r.URL
		return &u
	}
	u := *h.origin
	u.Path = r.URL.Path
	u.RawPath = r.URL.RawPath
	u.RawQuery = r.URL.RawQuery
	return &u
}
