package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		id, err := st.CreateUser(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err, "Error registering user")
			return
		}
		logAction(c, "register", "user_id="+strconv.Itoa(id))
		c.JSON(http.StatusOK, gin.H{"message": "User registered successfully", "user_id": id})
	}
}

// Login checks the credentials and, on success, also sets a session cookie
// accepted by Auth.
func Login(st Roster, secret string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		id, err := st.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondErr(c, err, "Error logging in")
			return
		}

		s, err := signSession(secret, id, req.Username, time.Now())
		if err != nil {
			respondErr(c, err, "Error logging in")
			return
		}
		c.SetCookie(cookieName, s, int(sessionTTL.Seconds()), "/", "", secureCookie, true)

		logAction(c, "login", "user_id="+strconv.Itoa(id))
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user_id": id})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func Me(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := st.GetUser(c.Request.Context(), uid(c))
		if err != nil {
			respondErr(c, err, "Error loading user")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func signSession(secret string, userID int, username string, now time.Time) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fantasy-roster",
		},
	})
	return tok.SignedString([]byte(secret))
}
