package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// contextUser is the gin context key under which RequireAuth stores
// the authenticated user.
const contextUser = "currentUser"

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/register", httputil.OptionsPost)
		r.POST("/register", co.RegisterUser)

		r.OPTIONS("/login", httputil.OptionsPost)
		r.POST("/login", co.Login)
	}
}

// RegisterSessionRoutes registers the routes that need an
// authenticated session.
func (co Controller) RegisterSessionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/me", httputil.OptionsGet)
		r.GET("/me", co.Me)

		r.OPTIONS("/logout", httputil.OptionsPost)
		r.POST("/logout", co.Logout)
	}
}

// RegisterUser creates a new user account and returns a session for it.
//
//	@Summary		Register user
//	@Description	Creates a new user account and logs it in
//	@Tags			Auth
//	@Produce		json
//	@Success		201	{object}	SessionResponse
//	@Failure		400	{object}	httpError
//	@Failure		409	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			user	body	RegisterRequest	true	"User"
//	@Router			/v1/auth/register [post]
func (co Controller) RegisterUser(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if len(request.Password) < 6 {
		c.JSON(status(errPasswordTooWeak), httpError{errPasswordTooWeak.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcryptCost)
	if err != nil {
		c.JSON(status(models.ErrGeneral), httpError{models.ErrGeneral.Error()})
		return
	}

	user := models.User{
		Email:        request.Email,
		Username:     request.Username,
		PasswordHash: string(hash),
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	co.respondSession(c, http.StatusCreated, user)
}

// Login verifies the credentials and returns a session.
//
//	@Summary		Login
//	@Description	Verifies the credentials and returns a bearer token
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			credentials	body	LoginRequest	true	"Credentials"
//	@Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(request.Email))).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			// Same error as a wrong password so that the response
			// does not leak which addresses are registered
			c.JSON(status(errInvalidCredentials), httpError{errInvalidCredentials.Error()})
			return
		}

		c.JSON(status(err), httpError{err.Error()})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password))
	if err != nil {
		c.JSON(status(errInvalidCredentials), httpError{errInvalidCredentials.Error()})
		return
	}

	co.respondSession(c, http.StatusOK, user)
}

// Me returns the user for the current session.
//
//	@Summary		Current user
//	@Description	Returns the user the session belongs to
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpError
//	@Router			/v1/auth/me [get]
func (co Controller) Me(c *gin.Context) {
	user := currentUser(c)
	response := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &response})
}

// Logout ends the current session.
//
// Sessions are stateless bearer tokens, so there is nothing to
// invalidate server side. The endpoint exists so that clients have a
// defined way to end a session and discard their token.
//
//	@Summary		Logout
//	@Description	Ends the current session
//	@Tags			Auth
//	@Success		204
//	@Failure		401	{object}	httpError
//	@Router			/v1/auth/logout [post]
func (co Controller) Logout(c *gin.Context) {
	c.JSON(http.StatusNoContent, nil)
}

func (co Controller) respondSession(c *gin.Context, code int, user models.User) {
	token, err := co.issueToken(user)
	if err != nil {
		c.JSON(status(models.ErrGeneral), httpError{models.ErrGeneral.Error()})
		return
	}

	session := Session{Token: token, User: newUser(user)}
	c.JSON(code, SessionResponse{Data: &session})
}

func (co Controller) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(co.TokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(co.JWTSecret))
}

// RequireAuth parses the bearer token, loads the user it belongs to
// and stores it in the context for the handlers.
func (co Controller) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(status(errNoToken), httpError{errNoToken.Error()})
			return
		}

		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(header, "Bearer "),
			&jwt.RegisteredClaims{},
			func(*jwt.Token) (any, error) { return []byte(co.JWTSecret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{errTokenInvalid.Error()})
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{errTokenInvalid.Error()})
			return
		}

		id, err := uuid.Parse(subject)
		if err != nil {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{errTokenInvalid.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", id).Error
		if err != nil {
			c.AbortWithStatusJSON(status(errTokenInvalid), httpError{errTokenInvalid.Error()})
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}
