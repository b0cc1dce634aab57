package handlers

import (
	"errors"
	"hams-server/internal/config"
	"hams-server/internal/logger"
	"hams-server/internal/models"
	"hams-server/internal/reference"
	"hams-server/internal/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Dir *reference.Directory
	Cfg *config.Config
	Log *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(dir *reference.Directory, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{Dir: dir, Cfg: cfg, Log: log}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string                  `json:"accessToken"`
	User        models.AccountSanitized `json:"user"`
}

// Login checks the credentials against the demo accounts after the
// configured simulated latency.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ttl := time.Duration(h.Cfg.JWTExpirationMinutes) * time.Minute
	result := utils.Async(h.Cfg.Ledger.SimulatedLatency, func() (LoginResponse, error) {
		account, ok := h.Dir.AccountByEmail(req.Email)
		if !ok || !account.IsActive || !account.CheckPassword(req.Password) {
			return LoginResponse{}, errInvalidCredentials
		}
		token, err := utils.GenerateAccessToken(&account, h.Cfg.JWTSecret, ttl)
		if err != nil {
			return LoginResponse{}, err
		}
		return LoginResponse{AccessToken: token, User: account.Sanitize()}, nil
	})

	resp, err := utils.Await(c.Request.Context(), result)
	switch {
	case errors.Is(err, errInvalidCredentials):
		h.Log.Audit("", "login", "account:"+req.Email, false, nil)
		utils.Unauthorized(c, "Invalid email or password")
		return
	case err != nil:
		utils.InternalServerError(c, "Failed to log in: "+err.Error())
		return
	}

	h.Log.Audit(resp.User.ID, "login", "account:"+resp.User.ID, true, map[string]interface{}{"role": resp.User.Role})
	utils.Success(c, "Login successful", resp)
}

// GetProfile returns the role-specific profile of the authenticated account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var profile models.Profile
	switch actor.Role {
	case models.RoleAdmin:
		account, found := h.Dir.AccountByID(actor.UserID)
		if !found {
			utils.NotFound(c, "User profile not found")
			return
		}
		sanitized := account.Sanitize()
		profile = models.Profile{Kind: models.ProfileAdmin, Admin: &sanitized}
	case models.RoleDoctor:
		doctor, found := h.Dir.GetDoctor(actor.DoctorID)
		if !found {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		profile = models.Profile{Kind: models.ProfileDoctor, Doctor: &doctor}
	case models.RolePatient:
		patient, found := h.Dir.GetPatient(actor.PatientID)
		if !found {
			utils.NotFound(c, "Patient profile not found")
			return
		}
		profile = models.Profile{Kind: models.ProfilePatient, Patient: &patient}
	default:
		utils.Error(c, http.StatusForbidden, "Unknown role")
		return
	}

	utils.Success(c, "Profile fetched successfully", profile)
}
