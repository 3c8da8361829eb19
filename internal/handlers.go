package internal

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Roster is the store surface the handlers depend on. *Store implements it.
type Roster interface {
	UserID(ctx context.Context, username string) (int, error)

	CreateUser(ctx context.Context, username, password string) (int, error)
	Authenticate(ctx context.Context, username, password string) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	ListUsers(ctx context.Context) ([]User, error)

	ListPlayers(ctx context.Context) ([]Player, error)
	ListFavorites(ctx context.Context, userID int) ([]Player, error)
	AddFavorite(ctx context.Context, userID int, in PlayerInput) (int, error)
	RemoveFavorite(ctx context.Context, userID int, name string) (bool, error)

	ListLineup(ctx context.Context, userID int) ([]LineupSlot, error)
	SetSlot(ctx context.Context, userID int, position string, playerID int) error
	ClearSlot(ctx context.Context, userID int, position string) error
}

// Catalog is the external search and news surface. *Upstream implements it.
type Catalog interface {
	Search(ctx context.Context, q string) ([]SearchResult, error)
	News(ctx context.Context) (json.RawMessage, error)
}

// resolveUser maps the :username path parameter to a user id. On failure the
// response has already been written.
func resolveUser(c *gin.Context, st Roster) (int, bool) {
	id, err := st.UserID(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondErr(c, err, "Error resolving user")
		return 0, false
	}
	return id, true
}

// ------------------- Catalog -------------------

func Search(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := cat.Search(c.Request.Context(), c.Query("q"))
		if errors.Is(err, ErrNoMatches) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No players found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

func News(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := cat.News(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

func ListPlayers(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := st.ListPlayers(c.Request.Context())
		if err != nil {
			respondErr(c, err, "Error listing players")
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

func ListUsers(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := st.ListUsers(c.Request.Context())
		if err != nil {
			respondErr(c, err, "Error listing users")
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// ------------------- Favorites -------------------

func ListFavorites(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}
		players, err := st.ListFavorites(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err, "Error listing favorites")
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

func AddFavorite(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}

		var req PlayerInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format, JSON required"})
			return
		}
		if req.PlayerID == nil && strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Player name is required"})
			return
		}
		if req.PlayerID != nil && (*req.PlayerID <= 0 || *req.PlayerID > math.MaxInt32) {
			respondErr(c, ErrPlayerNotFound, "Error adding player to favorites")
			return
		}

		playerID, err := st.AddFavorite(c.Request.Context(), userID, req)
		if err != nil {
			respondErr(c, err, "Error adding player to favorites")
			return
		}
		logAction(c, "add_favorite", "user_id="+strconv.Itoa(userID)+" player_id="+strconv.Itoa(playerID))
		c.JSON(http.StatusOK, gin.H{"message": "Player added to favorites", "player_id": playerID})
	}
}

func RemoveFavorite(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}

		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format, JSON required"})
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Player name is required"})
			return
		}

		purged, err := st.RemoveFavorite(c.Request.Context(), userID, req.Name)
		if err != nil {
			respondErr(c, err, "Error removing player from favorites")
			return
		}
		logAction(c, "remove_favorite", "user_id="+strconv.Itoa(userID)+" purged="+strconv.FormatBool(purged))
		c.JSON(http.StatusOK, gin.H{"message": "Player removed from favorites"})
	}
}

// ------------------- Starting eleven -------------------

func ListLineup(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}
		slots, err := st.ListLineup(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err, "Error listing starting eleven")
			return
		}
		c.JSON(http.StatusOK, slots)
	}
}

func SetSlot(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}

		// player_id arrives as a number from the UI but a numeric string is
		// accepted too.
		var req struct {
			Position string      `json:"position"`
			PlayerID json.Number `json:"player_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Position == "" || req.PlayerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Position and player ID are required"})
			return
		}
		n, err := strconv.ParseInt(req.PlayerID.String(), 10, 32)
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(req.PlayerID.String(), "-") {
			// larger than any player_id the column can hold
			respondErr(c, ErrPlayerNotFound, "Error adding player to starting eleven")
			return
		}
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Player ID must be a positive integer"})
			return
		}
		playerID := int(n)

		if err := st.SetSlot(c.Request.Context(), userID, req.Position, playerID); err != nil {
			respondErr(c, err, "Error adding player to starting eleven")
			return
		}
		logAction(c, "set_slot", "user_id="+strconv.Itoa(userID)+" position="+req.Position)
		c.JSON(http.StatusOK, gin.H{
			"message":   "Player added to starting eleven",
			"player_id": playerID,
			"position":  req.Position,
		})
	}
}

func ClearSlot(st Roster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUser(c, st)
		if !ok {
			return
		}
		position := c.Param("position")
		if err := st.ClearSlot(c.Request.Context(), userID, position); err != nil {
			respondErr(c, err, "Error removing player from starting eleven")
			return
		}
		logAction(c, "clear_slot", "user_id="+strconv.Itoa(userID)+" position="+position)
		c.JSON(http.StatusOK, gin.H{"message": "Player removed from starting eleven"})
	}
}
