package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/BetanzosJefferson/routify2-alpha-sub003/internal/config"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "base de datos no disponible: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conexion a base de datos OK"})
}
