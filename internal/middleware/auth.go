package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/auth"
	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/peakspace-dev/peakspace/internal/types"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		adminIDFloat, ok := claims["admin_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin ID in token claims"})
			return
		}

		adminID := uint(adminIDFloat)

		var admin models.AdminUser

		if err := db.DB.Where("id = ?", adminID).First(&admin).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			return
		}

		ctx.Set(types.ContextAdminKey, types.AdminResponse{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
		})
		ctx.Next()
	}
}

// extractToken reads the bearer header, falling back to the auth cookie
func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := ctx.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie
}
