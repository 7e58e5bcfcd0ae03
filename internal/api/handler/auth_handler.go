package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediboard/hospital-system/internal/api/metrics"
	"github.com/mediboard/hospital-system/internal/core/domain"
	"github.com/mediboard/hospital-system/internal/core/ports"
)

// AuthHandler owns the bootstrap gate, login/logout, and staff account
// creation.
type AuthHandler struct {
	creds    ports.CredentialService
	sessions ports.SessionService
	audit    ports.AuditLog
	log      zerolog.Logger
}

func NewAuthHandler(creds ports.CredentialService, sessions ports.SessionService, audit ports.AuditLog, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{creds: creds, sessions: sessions, audit: audit, log: log}
}

// BootstrapStatus reports whether the sole admin account exists yet. The UI
// shell refuses to show a login form until it does.
//
// @Summary      Check whether the admin account has been bootstrapped
// @Tags         auth
// @Produce      json
// @Success      200  {object}  bootstrapStatusResponse
// @Router       /auth/bootstrap [get]
func (h *AuthHandler) BootstrapStatus(c echo.Context) error {
	exists, err := h.creds.AdminExists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bootstrapStatusResponse{AdminExists: exists})
}

// Bootstrap creates the sole admin account. Open only while no admin exists.
//
// @Summary      Bootstrap the admin account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      bootstrapRequest  true  "Admin credentials"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/bootstrap [post]
func (h *AuthHandler) Bootstrap(c echo.Context) error {
	var req bootstrapRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "passwords do not match"})
	}

	account, err := h.creds.CreateAdmin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(domain.RoleAdmin).Inc()
	if err := h.audit.Append(c.Request().Context(), account.Username, "admin account created", ""); err != nil {
		h.log.Warn().Err(err).Msg("audit append failed for admin bootstrap")
	}

	return c.JSON(http.StatusCreated, newAccountResponse(account))
}

// Login authenticates a user and returns a signed session token. Every
// failure mode yields the same generic message so account existence never
// leaks.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, account, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if err := h.audit.Append(c.Request().Context(), account.Username, "login", "User logged in as "+account.Username); err != nil {
		h.log.Warn().Err(err).Msg("audit append failed for login")
	}

	return c.JSON(http.StatusOK, sessionResponse{Token: token, Account: newAccountResponse(account)})
}

// Logout revokes the caller's session token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "session revoked"
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	username, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	jti, _ := c.Get("jti").(string)
	exp, _ := c.Get("exp").(int64)
	if jti != "" {
		if err := h.sessions.Logout(c.Request().Context(), jti, exp); err != nil {
			return err
		}
	}

	if err := h.audit.Append(c.Request().Context(), username, "logout", ""); err != nil {
		h.log.Warn().Err(err).Msg("audit append failed for logout")
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the account behind the caller's session.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	username, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	account, err := h.creds.Lookup(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAccountResponse(account))
}

// CreateStaff creates a staff account. Only admins may mint accounts, and
// only with one of the staff roles.
//
// @Summary      Create a staff account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Staff account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/staff [post]
func (h *AuthHandler) CreateStaff(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "passwords do not match"})
	}

	account, err := h.creds.CreateStaff(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.WithLabelValues(account.Role).Inc()
	details := "New staff account created: " + account.Username + " (" + account.Role + ")"
	if err := h.audit.Append(c.Request().Context(), actor, "staff account created", details); err != nil {
		h.log.Warn().Err(err).Msg("audit append failed for staff creation")
	}

	return c.JSON(http.StatusCreated, newAccountResponse(account))
}
