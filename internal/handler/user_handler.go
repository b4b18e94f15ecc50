package handler

import (
	"context"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Onboarder seeds demo content for a fresh account. Failures are handled
// inside the implementation; signup never fails because of it.
type Onboarder interface {
	OnboardNewUser(ctx context.Context, userID uuid.UUID)
}

type UserHandler struct {
	userRepo  repository.UserRepositoryInterface
	users     *service.UserService
	onboarder Onboarder
	jwtCfg    config.JWTConfig
}

func NewUserHandler(userRepo repository.UserRepositoryInterface, users *service.UserService, onboarder Onboarder, jwtCfg config.JWTConfig) *UserHandler {
	return &UserHandler{
		userRepo:  userRepo,
		users:     users,
		onboarder: onboarder,
		jwtCfg:    jwtCfg,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input", "")
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB error", "")
		return
	}
	if existing != nil {
		respondError(c, http.StatusConflict, "User already exists", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Hash error", "")
		return
	}

	user := &model.User{
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: string(hash),
	}
	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		respondError(c, http.StatusInternalServerError, "Create failed", "")
		return
	}

	if h.onboarder != nil {
		h.onboarder.OnboardNewUser(c.Request.Context(), user.ID)
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input", "")
		return
	}

	req.Email = strings.ToLower(req.Email)

	user, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DB error", "")
		return
	}
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := auth.GenerateToken(h.jwtCfg.Secret, user.ID, h.jwtCfg.Expiry())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Token error", "")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input", "")
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}
