package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/portfolio"
)

func portfolioContent(content *portfolio.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, content)
	}
}

func portfolioSection(content *portfolio.Content) gin.HandlerFunc {
	return func(c *gin.Context) {
		section, err := content.Section(c.Param("section"))
		if errors.Is(err, portfolio.ErrUnknownSection) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Section not found"})
			return
		}
		c.JSON(http.StatusOK, section)
	}
}
