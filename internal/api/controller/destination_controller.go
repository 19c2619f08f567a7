package controller

import (
	"ctchen222/rehla/internal/api/response"
	"ctchen222/rehla/internal/api/service"

	"github.com/gin-gonic/gin"
)

// DestinationController serves the travel catalog.
type DestinationController struct {
	destinationService service.DestinationService
}

// NewDestinationController creates a new DestinationController.
func NewDestinationController(destinationService service.DestinationService) *DestinationController {
	return &DestinationController{destinationService: destinationService}
}

func (dc *DestinationController) List(c *gin.Context) {
	destinations, err := dc.destinationService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessResponseList(c, destinations)
}

func (dc *DestinationController) Preview(c *gin.Context) {
	destinations, err := dc.destinationService.ListPreview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessResponseList(c, destinations)
}
