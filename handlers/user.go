package handlers

import (
	"net/http"

	"proconecta/middleware"
	"proconecta/services/user"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes identity and profile endpoints.
type UserHandler struct {
	UserService user.UserService
}

// RegisterHandler handles POST /auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input user.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	resp, err := h.UserService.Register(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.GetLogger().Info("user registered",
		zap.String("userId", resp.User.ID), zap.String("userType", string(resp.User.UserType)))
	c.JSON(http.StatusCreated, resp)
}

// SignInHandler handles POST /auth/signin.
func (h *UserHandler) SignInHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid sign-in payload", err.Error())
		return
	}

	resp, err := h.UserService.SignIn(req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler handles POST /auth/signout.
func (h *UserHandler) SignOutHandler(c *gin.Context) {
	actorID := middleware.ActorID(c)
	if err := h.UserService.SignOut(actorID); err != nil {
		utils.RespondError(c, &utils.NetworkError{Op: "sign-out", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GetMeHandler handles GET /users/me.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// GetUserByUsernameHandler handles GET /users/username/:username.
func (h *UserHandler) GetUserByUsernameHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByUsername(c.Param("username"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PUT /users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var input user.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	usr, err := h.UserService.UpdateProfile(middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// CompleteProviderProfileHandler handles PUT /users/me/provider-profile.
func (h *UserHandler) CompleteProviderProfileHandler(c *gin.Context) {
	var input user.ProviderProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid provider profile payload", err.Error())
		return
	}

	usr, err := h.UserService.CompleteProviderProfile(middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateFCMTokenHandler handles PUT /users/me/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid token payload", err.Error())
		return
	}

	if err := h.UserService.UpdateFCMToken(middleware.ActorID(c), req.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}

// ListProvidersHandler handles GET /providers?category=...
func (h *UserHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.UserService.ListProvidersByCategory(c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}
