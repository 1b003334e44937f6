package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/werewolves/lupus/internal/auth"
	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/config"
	"github.com/werewolves/lupus/internal/db"
	"github.com/werewolves/lupus/internal/handlers"
	"github.com/werewolves/lupus/internal/middleware"
	"github.com/werewolves/lupus/internal/sites"
	"gorm.io/gorm"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the Lupus HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		blocks.SetPreviewCacheSize(config.GetInt("render.preview_cache_size"))

		baseDomain := config.GetString("server.base_domain")
		if baseDomain == "" {
			baseDomain = "localhost"
		}

		loginRateLimiter := middleware.NewLoginRateLimiter()
		defer loginRateLimiter.Stop()

		r := newRouter(db.GetDB(), baseDomain, loginRateLimiter)

		server := &http.Server{
			Addr:              ":" + config.GetString("server.http_port"),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			certFile := config.GetString("server.tls_cert_file")
			keyFile := config.GetString("server.tls_key_file")
			if config.GetBool("server.tls_enabled") && certFile != "" && keyFile != "" {
				log.Printf("Starting HTTPS server on %s", server.Addr)
				errCh <- server.ListenAndServeTLS(certFile, keyFile)
				return
			}
			log.Printf("Starting HTTP server on %s", server.Addr)
			errCh <- server.ListenAndServe()
		}()
		log.Printf("Base domain: %s", baseDomain)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
				os.Exit(1)
			}
		case <-ctx.Done():
			log.Println("Shutting down")
			timeout := config.GetDuration("server.shutdown_timeout")
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("Shutdown error: %v", err)
			}
		}
	},
}

// newRouter wires the public site, the theme stylesheet and the admin API
func newRouter(database *gorm.DB, baseDomain string, loginRateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())

	// System routes (no site context needed)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "lupus",
		})
	})

	siteGroup := r.Group("/")
	siteGroup.Use(middleware.SiteResolutionMiddleware(database, baseDomain))
	siteGroup.Use(themeMiddleware())
	{
		siteGroup.GET("/", handlers.ServeHomepage)
		siteGroup.GET("/theme.css", handlers.ServeThemeCSS)

		api := siteGroup.Group("/admin/api")
		api.Use(middleware.IPFilterMiddleware(config.GetStringSlice("security.admin_blocklist")))
		{
			api.POST("/login", middleware.RateLimitMiddleware(loginRateLimiter), handlers.LoginHandler)
			api.POST("/logout", handlers.LogoutHandler)

			api.GET("/subdomains/check", auth.RequireGlobalAdmin(), handlers.SubdomainCheckHandler)

			protected := api.Group("")
			protected.Use(auth.RequireAuth())
			{
				protected.GET("/me", handlers.MeHandler)

				protected.GET("/pages", handlers.ListPagesHandler)
				protected.POST("/pages", handlers.CreatePageHandler)
				protected.GET("/pages/:id", handlers.GetPageHandler)
				protected.PUT("/pages/:id", handlers.UpdatePageHandler)
				protected.DELETE("/pages/:id", handlers.DeletePageHandler)
				protected.POST("/pages/:id/publish", handlers.PublishPageHandler)
				protected.POST("/pages/:id/unpublish", handlers.UnpublishPageHandler)
				protected.POST("/pages/:id/blocks", handlers.CreateBlockHandler)

				protected.POST("/blocks/preview", handlers.PreviewBlockHandler)
				protected.PUT("/blocks/:block_id", handlers.UpdateBlockHandler)
				protected.DELETE("/blocks/:block_id", handlers.DeleteBlockHandler)
				protected.POST("/blocks/:block_id/move-up", handlers.MoveBlockUpHandler)
				protected.POST("/blocks/:block_id/move-down", handlers.MoveBlockDownHandler)

				protected.GET("/settings", handlers.GetSettingsHandler)
				protected.PUT("/settings", handlers.UpdateSettingsHandler)
			}
		}
	}

	// Handle all other routes as potential pages
	r.NoRoute(middleware.SiteResolutionMiddleware(database, baseDomain), themeMiddleware(), handlers.ServePage)

	return r
}

// themeMiddleware exposes the resolved site's customizer settings to handlers
func themeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		site, ok := middleware.SiteFromContext(c)
		if !ok {
			c.Next()
			return
		}

		c.Set(handlers.ThemeSettingsKey, sites.Settings(site))
		c.Next()
	}
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
