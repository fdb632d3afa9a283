package gatewaytest

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleSignup(c *fiber.Ctx) error {
	var req struct {
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Data     map[string]any `json:"data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email and password are required"})
	}

	var existing AuthUser
	if err := s.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "User already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "hashing failed"})
	}

	name, _ := req.Data["name"].(string)
	user := AuthUser{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		Name:         name,
		CreatedAt:    time.Now(),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if s.CreateProfileOnSignup {
		profile := Profile{
			ID:     user.ID,
			Name:   name,
			Handle: "@" + uuid.NewString()[:8],
			Level:  "Bronze",
		}
		if err := s.DB.Create(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (s *Server) handleToken(c *fiber.Ctx) error {
	switch c.Query("grant_type") {
	case "password":
		return s.passwordGrant(c)
	case "refresh_token":
		return s.refreshGrant(c)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "unsupported grant type"})
}

func (s *Server) passwordGrant(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "invalid request body"})
	}

	var user AuthUser
	if err := s.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "Invalid login credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "Invalid login credentials"})
	}

	return s.issueSession(c, user)
}

func (s *Server) refreshGrant(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "invalid request body"})
	}

	s.mu.Lock()
	userID, ok := s.refreshTokens[req.RefreshToken]
	if ok {
		delete(s.refreshTokens, req.RefreshToken)
	}
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "Invalid Refresh Token"})
	}

	var user AuthUser
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error_description": "Invalid Refresh Token"})
	}
	return s.issueSession(c, user)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) issueSession(c *fiber.Ctx, user AuthUser) error {
	ttl := s.TokenTTL
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "signing failed"})
	}

	refresh := uuid.NewString()
	s.mu.Lock()
	s.refreshTokens[refresh] = user.ID
	s.mu.Unlock()

	return c.JSON(fiber.Map{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    int(ttl.Seconds()),
		"refresh_token": refresh,
		"user": fiber.Map{
			"id":            user.ID,
			"email":         user.Email,
			"user_metadata": fiber.Map{"name": user.Name},
		},
	})
}
