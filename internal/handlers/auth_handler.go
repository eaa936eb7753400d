package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/fishmaster-api/internal/httperr"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/account"
	"github.com/BruksfildServices01/fishmaster-api/internal/usecase/profile"
)

type AuthHandler struct {
	signup *account.Signup
	login  *account.Login
	verify *account.VerifyEmail
	resend *account.ResendCode
	log    logrus.FieldLogger
}

func NewAuthHandler(
	signup *account.Signup,
	login *account.Login,
	verify *account.VerifyEmail,
	resend *account.ResendCode,
	log logrus.FieldLogger,
) *AuthHandler {
	return &AuthHandler{
		signup: signup,
		login:  login,
		verify: verify,
		resend: resend,
		log:    log,
	}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type ResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.signup.Execute(c.Request.Context(), account.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.RespondBadRequest(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account created. Check your email for the verification code.",
		"user":    profile.ToDTO(u, nil),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.RespondBadRequest(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": err.Error()})
		return
	}

	if err := h.verify.Execute(c.Request.Context(), req.Email, req.Code); err != nil {
		if be, ok := httperr.AsBusiness(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": be.Error()})
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}

func (h *AuthHandler) Resend(c *gin.Context) {
	var req ResendRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resend.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.RespondBadRequest(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}
