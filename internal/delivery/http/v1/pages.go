package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleIndex renders the landing page. The engine must have the
// "index.html" template loaded.
func (h *handlerImpl) HandleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Task Tracker",
	})
}
