package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID parses a 24-hex object id path parameter, writing a 404 and
// returning false when malformed. Malformed ids are indistinguishable from
// missing documents to callers.
func pathID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// identity pulls the authenticated username and admin flag set by the auth
// middleware.
func identity(c *gin.Context) (username string, admin bool) {
	username = c.GetString("username")
	admin = c.GetBool("admin")
	return username, admin
}

func pageParams(c *gin.Context, defaultSize int) (page, pageSize int) {
	page, pageSize = 1, defaultSize
	if pn, err := strconv.Atoi(c.Query("pn")); err == nil && pn > 0 {
		page = pn
	}
	if ps, err := strconv.Atoi(c.Query("ps")); err == nil && ps > 0 {
		pageSize = ps
	}
	return page, pageSize
}
