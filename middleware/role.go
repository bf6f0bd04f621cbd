package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// AdminOnly restricts a route to admin callers. Must run after
// JWTAuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
			return
		}
		c.Next()
	}
}

// CounselorOnly restricts a route to approved counselors. The approval
// flag lives on the user document and can be revoked by an admin at any
// time, so it is checked against the store through the auth cache rather
// than trusted from the token.
func CounselorOnly(repo counselorRepo.CounselorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleCounselor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Counselor privileges required."})
			return
		}
		counselorID := c.GetString("userID")

		approved, err := counselorApproved(repo, counselorID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if !approved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied. Your counselor account is pending admin approval.",
			})
			return
		}

		c.Set("counselorID", counselorID)
		c.Next()
	}
}

func counselorApproved(repo counselorRepo.CounselorRepository, counselorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := utils.AuthCachePrefix + "approved:" + counselorID

	authCache := utils.AuthCacheClient
	cacheEnabled := authCache != nil
	if cacheEnabled {
		cached, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		} else if err != redis.Nil {
			log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
		}
	}

	counselor, err := repo.GetByID(counselorID)
	if err != nil {
		return false, err
	}

	if cacheEnabled {
		val := "0"
		if counselor.IsApproved {
			val = "1"
		}
		_ = authCache.Set(ctx, cacheKey, val, utils.AuthCacheTTL).Err()
	}
	return counselor.IsApproved, nil
}
