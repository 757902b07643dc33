package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/internal/types"
)

func GetCurrentAdmin(ctx *gin.Context) (types.AdminResponse, error) {
	admin, exists := ctx.Get(types.ContextAdminKey)

	if !exists {
		return types.AdminResponse{}, fmt.Errorf("admin not authenticated")
	}

	adminUser, ok := admin.(types.AdminResponse)

	if !ok {
		return types.AdminResponse{}, fmt.Errorf("invalid admin type in context")
	}

	return adminUser, nil
}
