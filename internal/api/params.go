package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"workly/internal/store"
)

// pageQuery is embedded in every list query.
type pageQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0"`
}

func (q pageQuery) page() store.Page {
	return store.Page{Skip: q.Skip, Limit: q.Limit}
}

// pathID parses the :id parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// bindQuery binds query parameters into q, writing a 400 on failure.
func bindQuery(c *gin.Context, q any) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	return true
}

// bindJSON binds the request body into req, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	return true
}
