// Package api exposes the game operations over a localhost HTTP API.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bicho_service/internal/game"
	"bicho_service/internal/ledger"
)

type Handler struct {
	svc *game.Service
	log *logrus.Logger
}

func NewHandler(svc *game.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register wires all routes onto the router.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/session", h.Session)

	api.GET("/animals", h.ListAnimals)

	api.POST("/bets", h.PlaceBet)
	api.GET("/bets", h.ListBets)

	api.POST("/draws", h.ExecuteDraw)
	api.GET("/draws", h.ListDraws)

	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.DELETE("/users/:id", h.DeleteUser)

	api.GET("/stats", h.Stats)

	api.GET("/sync/export", h.Export)
	api.POST("/sync/import", h.Import)
}

// statusOf maps game errors onto HTTP statuses. Insufficient balance
// keeps the 402 convention for wallet rejections.
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrUnknownAnimal),
		errors.Is(err, ledger.ErrMalformedSnapshot):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotAuthenticated),
		errors.Is(err, game.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrDuplicateUsername):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

// requireAdmin resolves the session user and rejects non-admins.
func (h *Handler) requireAdmin(c *gin.Context) (ledger.User, bool) {
	user, ok := h.svc.CurrentUser()
	if !ok {
		h.fail(c, game.ErrNotAuthenticated)
		return ledger.User{}, false
	}
	if user.Role != ledger.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return ledger.User{}, false
	}
	return user, true
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		// Matching the original's single "not authorized" screen: the
		// status distinguishes the cases, the log keeps the detail.
		h.log.WithField("username", req.Username).WithError(err).Info("login rejected")
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	h.svc.Logout()
	c.Status(http.StatusNoContent)
}

func (h *Handler) Session(c *gin.Context) {
	user, ok := h.svc.CurrentUser()
	if !ok {
		h.fail(c, game.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListAnimals(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Registry().List())
}

type placeBetRequest struct {
	AnimalID int             `json:"animal_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h *Handler) PlaceBet(c *gin.Context) {
	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bet, err := h.svc.PlaceBet(req.AnimalID, req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bet)
}

// ListBets returns the session user's bets; admins see everyone's.
func (h *Handler) ListBets(c *gin.Context) {
	user, ok := h.svc.CurrentUser()
	if !ok {
		h.fail(c, game.ErrNotAuthenticated)
		return
	}
	filter := user.ID
	if user.Role == ledger.RoleAdmin {
		filter = ""
	}
	c.JSON(http.StatusOK, h.svc.ListBets(filter))
}

func (h *Handler) ExecuteDraw(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	result, err := h.svc.ExecuteDraw()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListDraws(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListDraws())
}

func (h *Handler) CreateUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	var req game.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.svc.CreateUser(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.ListUsers())
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Stats(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Stats())
}

func (h *Handler) Export(c *gin.Context) {
	blob, err := h.svc.Export()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blob": blob})
}

type importRequest struct {
	Blob string `json:"blob"`
}

func (h *Handler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Import(req.Blob); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
