package internal

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func NewRouter(st Roster, cat Catalog, cfg *Config) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	proxyLimit := RateLimit(rate.NewLimiter(rate.Limit(cfg.ProxyRateLimit), cfg.ProxyRateBurst))

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Hello, World!") })
	r.GET("/search", proxyLimit, Search(cat))

	api := r.Group("/api")
	{
		api.POST("/register", Register(st))
		api.POST("/login", Login(st, cfg.JWTSecret, cfg.CookieSecure))
		api.POST("/logout", Logout())
		api.GET("/me", Auth(cfg.JWTSecret), Me(st))

		api.GET("/players", ListPlayers(st))
		api.GET("/users", ListUsers(st))
		api.GET("/news", proxyLimit, News(cat))

		// favorites
		api.GET("/users/:username/players", ListFavorites(st))
		api.POST("/users/:username/favorite_players", AddFavorite(st))
		api.DELETE("/users/:username/favorite_players", RemoveFavorite(st))

		// starting eleven
		api.GET("/startingeleven/:username", ListLineup(st))
		api.POST("/startingeleven/:username", SetSlot(st))
		api.DELETE("/startingeleven/:username/:position", ClearSlot(st))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
