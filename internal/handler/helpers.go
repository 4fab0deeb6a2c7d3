package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SakshiBishnoi/eCommerce/pkg/middleware"
)

// currentUserID reads the authenticated caller's id set by RequireAuth.
// A missing or malformed id means the token middleware did not run.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses the :id route parameter as an ObjectID.
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
