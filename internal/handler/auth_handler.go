package handler

import (
	"errors"
	"net/http"
	"strings"

	"inventory_tracker/internal/middleware"
	"inventory_tracker/internal/service"
	"inventory_tracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler serves the login/registration pages and session lifecycle.
type AuthHandler struct {
	service    service.AuthService
	sessions   session.Store
	cookieName string
	log        zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, sessions session.Store, cookieName string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, sessions: sessions, cookieName: cookieName, log: log}
}

// Home redirects to the product list or the login page depending on
// session state. Lighter than the gate: no error message is set.
func (h *AuthHandler) Home(c *gin.Context) {
	if middleware.SessionFrom(c).LoggedIn() {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form, surfacing and clearing any pending
// one-shot session error.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess.LoggedIn() {
		c.Redirect(http.StatusFound, "/products")
		return
	}

	var errMsg string
	if sess != nil {
		msg, err := h.sessions.PopError(c.Request.Context(), sess.Token)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to pop session error")
		}
		errMsg = msg
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Log In",
		"error": errMsg,
	})
}

// Login processes the login form.
func (h *AuthHandler) Login(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var fieldErrors []string
	if username == "" {
		fieldErrors = append(fieldErrors, "Username is required.")
	}
	if password == "" {
		fieldErrors = append(fieldErrors, "Password is required.")
	}
	if len(fieldErrors) > 0 {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title":    "Log In",
			"errors":   fieldErrors,
			"username": username,
		})
		return
	}

	user, err := h.service.Login(c.Request.Context(), username, password)
	if err != nil {
		msg := "Invalid username or password."
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("login failed")
			msg = "Server error while logging in."
		}
		h.setSessionError(c, sess, msg)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.establishSession(c, sess, user.ID, user.Username)
	c.Redirect(http.StatusFound, "/products")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"title": "Register"})
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var fieldErrors []string
	if username == "" {
		fieldErrors = append(fieldErrors, "Username is required.")
	}
	if password == "" {
		fieldErrors = append(fieldErrors, "Password is required.")
	}
	if len(fieldErrors) > 0 {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"title":    "Register",
			"errors":   fieldErrors,
			"username": username,
		})
		return
	}

	user, err := h.service.Register(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrUserAlreadyExists) {
			h.log.Error().Err(err).Msg("registration failed")
		}
		// One generic message for uniqueness conflicts and store
		// failures alike; detail stays in the log.
		c.HTML(http.StatusOK, "register.html", gin.H{
			"title":    "Register",
			"error":    "Could not register user. Please try again.",
			"username": username,
		})
		return
	}

	h.establishSession(c, sess, user.ID, user.Username)
	c.Redirect(http.StatusFound, "/products")
}

// Logout destroys the session unconditionally and redirects to login.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess != nil {
		if err := h.sessions.Destroy(c.Request.Context(), sess.Token); err != nil {
			h.log.Error().Err(err).Msg("failed to destroy session")
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) establishSession(c *gin.Context, sess *session.Session, userID int64, username string) {
	if sess == nil {
		return
	}
	sess.UserID = &userID
	sess.Username = username
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		h.log.Error().Err(err).Msg("failed to save session")
	}
}

func (h *AuthHandler) setSessionError(c *gin.Context, sess *session.Session, msg string) {
	if sess == nil {
		return
	}
	if err := h.sessions.SetError(c.Request.Context(), sess.Token, msg); err != nil {
		h.log.Error().Err(err).Msg("failed to set session error")
	}
}

// RegisterAuthRoutes wires the ungated routes.
func (h *AuthHandler) RegisterAuthRoutes(router *gin.Engine) {
	router.GET("/", h.Home)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.GET("/logout", h.Logout)
}
