package handler

import (
	"net/http"
	"strings"

	"github.com/Abhinav-2002/Salaried/internal/model"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/service"
	"github.com/labstack/echo/v4"
)

// WaitlistHandler serves POST /api/waitlist.
type WaitlistHandler struct {
	Handler
	waitlist *service.WaitlistService
}

func NewWaitlistHandler(s *server.Server, waitlist *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{
		Handler:  NewHandler(s),
		waitlist: waitlist,
	}
}

// Join stores one signup. The payload arrives normalized and validated;
// this adds the request metadata and hands the record to the service.
func (h *WaitlistHandler) Join(c echo.Context, req *model.SignupRequest) (*model.SignupResponse, error) {
	r := c.Request()
	signup := model.NewSignup(req, forwardedFor(r), userAgent(r))

	if err := h.waitlist.Join(r.Context(), signup); err != nil {
		return nil, err
	}

	return &model.SignupResponse{OK: true}, nil
}

// forwardedFor returns the first X-Forwarded-For hop, trimmed, or nil.
//
// This is the client address as reported by the proxy in front of us.
// It is stored for analytics only and never trusted for anything else.
func forwardedFor(r *http.Request) *string {
	first, _, _ := strings.Cut(r.Header.Get(echo.HeaderXForwardedFor), ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return nil
	}
	return &first
}

// userAgent returns the User-Agent header verbatim, or nil when absent.
func userAgent(r *http.Request) *string {
	ua := r.UserAgent()
	if ua == "" {
		return nil
	}
	return &ua
}
