package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"speaksy_backend/internals/configs"
	"speaksy_backend/internals/features/users/dto"
	"speaksy_backend/internals/features/users/model"
	"speaksy_backend/internals/features/users/service"
	helper "speaksy_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Malformed request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[ERROR] bcrypt:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to register")
	}

	profile := model.Profile{
		ProfileName:     strings.TrimSpace(req.Name),
		ProfileEmail:    strings.ToLower(strings.TrimSpace(req.Email)),
		ProfilePassword: string(hash),
		ProfileRole:     req.Role,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&profile).Error; err != nil {
		log.Println("[ERROR] create profile:", err)
		return helper.Error(c, fiber.StatusConflict, "Email is already registered")
	}

	token, err := service.CreateToken(configs.JWTSecret, profile.ProfileID, profile.ProfileRole)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Account created", dto.AuthResponse{
		Token: token,
		User:  profile,
	})
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Malformed request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var profile model.Profile
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("profile_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Println("[ERROR] find profile:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.ProfilePassword), []byte(req.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := service.CreateToken(configs.JWTSecret, profile.ProfileID, profile.ProfileRole)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.Success(c, "Logged in", dto.AuthResponse{
		Token: token,
		User:  profile,
	})
}

// POST /api/u/logout — blacklists the presented token until it expires.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Missing bearer token")
	}

	entry := model.TokenBlacklist{
		TokenBlacklistToken:     tokenString,
		TokenBlacklistExpiredAt: time.Now().Add(service.TokenTTL),
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&entry).Error; err != nil {
		log.Println("[ERROR] blacklist token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to log out")
	}

	return helper.Success(c, "Logged out", nil)
}

// GET /api/u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, ok := helper.GetUserUUID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var profile model.Profile
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("profile_id = ?", userID).
		First(&profile).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Profile not found")
	}

	return helper.Success(c, "OK", profile)
}
