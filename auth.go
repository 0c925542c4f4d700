package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/saivarshithnaidu/nutrilens-back-end/internal/auth"
)

const minPasswordLen = 6

// dummyHash is a pre-computed bcrypt hash used when a login identifier isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based account enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

const forgotPasswordMessage = "If the account exists, reset instructions have been sent."

// tokenResponse is returned by signup and login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// signup creates an account and returns an access token.
// POST /auth/signup (public).
func (h *Handler) signup(c *gin.Context) {
	var body struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		apiError(c, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(body.Password) < minPasswordLen {
		apiError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	// Empty phone is stored as NULL so it doesn't collide on the unique index.
	var phone *string
	if p := strings.TrimSpace(body.Phone); p != "" {
		phone = &p
	}

	u, err := queryOne[user](h.db, c,
		`INSERT INTO users (full_name, email, phone, password)
		 VALUES (@fullName, @email, @phone, @password)
		 RETURNING *`,
		pgx.NamedArgs{"fullName": strings.TrimSpace(body.FullName), "email": body.Email, "phone": phone, "password": string(hash)})
	if err != nil {
		if isUniqueViolation(err) {
			apiError(c, http.StatusBadRequest, "email or phone already registered")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, u)
}

// login verifies email-or-phone plus password and returns an access token.
// POST /auth/login (public).
func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ident := strings.TrimSpace(body.Username)

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE lower(email) = lower(@ident) OR phone = @ident LIMIT 1",
		pgx.NamedArgs{"ident": ident})

	// Always run bcrypt to keep response time constant regardless of whether the
	// account was found.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "incorrect email/phone or password")
		return
	}

	h.respondWithToken(c, http.StatusOK, u)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, u user) {
	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		log.WithError(err).Error("[auth] sign token")
		apiError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	c.JSON(status, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// me returns the authenticated user.
// GET /auth/me.
func (h *Handler) me(c *gin.Context) {
	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE id = @userID",
		pgx.NamedArgs{"userID": c.GetInt("user_id")})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "user not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch user")
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

// forgotPassword issues a reset token. The response is the same whether or
// not the account exists.
// POST /auth/forgot-password (public).
func (h *Handler) forgotPassword(c *gin.Context) {
	var body struct {
		EmailOrPhone string `json:"email_or_phone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.EmailOrPhone) == "" {
		apiError(c, http.StatusBadRequest, "email_or_phone is required")
		return
	}
	if h.resets == nil {
		apiError(c, http.StatusServiceUnavailable, "password reset unavailable")
		return
	}

	u, err := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE lower(email) = lower(@ident) OR phone = @ident LIMIT 1",
		pgx.NamedArgs{"ident": strings.TrimSpace(body.EmailOrPhone)})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusInternalServerError, "failed to look up account")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	token, err := h.resets.Issue(c, u.ID)
	if err != nil {
		log.WithError(err).Error("[forgotPassword] issue token")
		apiError(c, http.StatusInternalServerError, "failed to issue reset token")
		return
	}

	logResetIssued(u.ID, token)

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// tokenFingerprint identifies a token in logs without revealing it.
func tokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}

// logResetIssued records an issued reset token. The token itself only goes
// to the debug level, where operators without mail transport can relay it.
func logResetIssued(userID int, token string) {
	entry := log.WithFields(log.Fields{"user_id": userID, "token_fp": tokenFingerprint(token)})
	entry.Info("[forgotPassword] reset token issued")
	entry.WithField("token", token).Debug("[forgotPassword] reset token value")
}

// resetPassword redeems a reset token and sets a new password.
// POST /auth/reset-password (public).
func (h *Handler) resetPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		apiError(c, http.StatusBadRequest, "token is required")
		return
	}
	if len(body.NewPassword) < minPasswordLen {
		apiError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if h.resets == nil {
		apiError(c, http.StatusServiceUnavailable, "password reset unavailable")
		return
	}

	userID, err := h.resets.Consume(c, body.Token)
	if err != nil {
		if errors.Is(err, auth.ErrResetTokenInvalid) {
			apiError(c, http.StatusBadRequest, "invalid or expired token")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to read reset token")
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}
	result, err := h.db.Exec(c,
		"UPDATE users SET password = @password WHERE id = @userID",
		pgx.NamedArgs{"password": string(hash), "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update password")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// authMiddleware validates the Bearer JWT and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := h.jwt.Validate(token)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
