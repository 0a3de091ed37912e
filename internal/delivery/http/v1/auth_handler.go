package v1

import (
	"net/http"
	"net/url"
	"time"

	"job-tracker-backend/config"
	"job-tracker-backend/internal/delivery/http/middleware"
	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookieName = "oauth_state"
	oauthStateTTL        = 10 * time.Minute
	authErrorMessage     = "Sorry, something went wrong during authentication."
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

// NewAuthHandler mounts the sign-in routes. limit guards the endpoints that
// start a session.
func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, limit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC, config: cfg}

	publicAuth := public.Group("/auth")
	{
		publicAuth.GET("/linkedin", limit, handler.LinkedIn)
		publicAuth.GET("/callback", limit, handler.Callback)
		publicAuth.POST("/guest", limit, handler.Guest)
		publicAuth.POST("/logout", handler.Logout)
		publicAuth.GET("/error", handler.Error)
		publicAuth.GET("/session", handler.Session)
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.config.CookieSecure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

// redirectToError sends the browser to the frontend error view.
func (h *AuthHandler) redirectToError(c *gin.Context, reason string) {
	q := url.Values{}
	q.Set("error", reason)
	c.Redirect(http.StatusFound, h.config.FrontendURL+"/auth/error?"+q.Encode())
}

// LinkedIn godoc
// @Summary      Start LinkedIn sign-in
// @Description  Redirects to LinkedIn with a state bound to the oauth_state cookie.
// @Tags         auth
// @Success      302
// @Router       /auth/linkedin [get]
func (h *AuthHandler) LinkedIn(c *gin.Context) {
	authURL, state, err := h.authUC.BeginOAuth(c)
	if err != nil {
		logger.Log.Warn("OAuth start failed", "error", err)
		h.redirectToError(c, "unavailable")
		return
	}

	h.setCookie(c, oauthStateCookieName, state, int(oauthStateTTL.Seconds()))
	c.Redirect(http.StatusFound, authURL)
}

// Callback godoc
// @Summary      LinkedIn callback
// @Description  Exchanges the code, sets the session cookie and redirects to the job list. Failures redirect to the error view.
// @Tags         auth
// @Param        code   query  string  true  "Authorization code"
// @Param        state  query  string  true  "State"
// @Success      302
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	state, _ := c.Cookie(oauthStateCookieName)
	h.clearCookie(c, oauthStateCookieName)

	if providerErr := c.Query("error"); providerErr != "" {
		h.redirectToError(c, "denied")
		return
	}
	if state == "" || c.Query("state") != state {
		h.redirectToError(c, "state_mismatch")
		return
	}

	grant, err := h.authUC.CompleteOAuth(c, c.Query("code"))
	if err != nil {
		logger.Log.Warn("OAuth callback failed", "error", err)
		h.redirectToError(c, "sign_in_failed")
		return
	}

	maxAge := int(time.Until(grant.ExpiresAt).Seconds())
	h.setCookie(c, middleware.SessionCookieName, grant.Token, maxAge)
	// A leftover guest marker would outrank the new session
	h.clearCookie(c, middleware.GuestCookieName)

	c.Redirect(http.StatusFound, h.config.FrontendURL+"/jobs")
}

// Guest godoc
// @Summary      Continue as guest
// @Description  Creates a guest identity and sets the guestSession cookie. Guest data expires after GUEST_TTL_HOURS.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/guest [post]
func (h *AuthHandler) Guest(c *gin.Context) {
	marker, err := h.authUC.StartGuest(c)
	if err != nil {
		c.Error(err)
		return
	}

	value, err := middleware.EncodeGuestMarker(marker)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	h.setCookie(c, middleware.GuestCookieName, value, h.config.GuestTTLHours*3600)

	response.Success(c, http.StatusOK, "Signed in as guest", gin.H{
		"user":     marker.User,
		"redirect": "/jobs",
	})
}

// Logout godoc
// @Summary      Sign out
// @Description  Clears identity cookies. Guest data is discarded.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.CurrentIdentity(c); id.Kind != domain.IdentityUnresolved {
		if err := h.authUC.SignOut(c, id); err != nil {
			logger.Log.Warn("Sign-out cleanup failed", "error", err)
		}
	}

	h.clearCookie(c, middleware.SessionCookieName)
	h.clearCookie(c, middleware.GuestCookieName)

	response.Success(c, http.StatusOK, "Signed out", gin.H{"redirect": "/"})
}

// Error godoc
// @Summary      Sign-in error view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/error [get]
func (h *AuthHandler) Error(c *gin.Context) {
	response.Success(c, http.StatusOK, "Authentication Failed", gin.H{
		"message":                authErrorMessage,
		"reason":                 c.Query("error"),
		"redirect":               "/",
		"redirect_after_seconds": 5,
	})
}

// Session godoc
// @Summary      Current session
// @Description  How the request resolved: guest, authenticated or unresolved (loading while the session check is incomplete).
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	res := middleware.CurrentResolution(c)
	response.Success(c, http.StatusOK, "Session", gin.H{
		"kind":    res.Identity.Kind,
		"loading": res.Loading,
		"name":    res.Identity.Name,
		"email":   res.Identity.Email,
		"image":   res.Identity.Image,
	})
}
