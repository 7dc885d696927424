package handlers

import (
	"net/http"

	intconfig "storefront/internal/config"
	intdb "storefront/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "storefront berjalan"})
}

// DBCheck pings the shared store and verifies the schema is migrated.
func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := intconfig.EnsureDB(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database tidak tersedia: " + err.Error()})
		return
	}

	db, driver := intconfig.Current()
	if missing := intdb.MissingTables(ctx, db, driver); len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "skema database belum lengkap", "missing_tables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "driver": driver, "tables": intdb.Tables})
}
