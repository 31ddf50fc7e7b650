// README: Remote site fee lookup by coordinates or street address.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/modules/remotesite"
)

type RemoteSiteHandler struct {
	sites *remotesite.Service
}

func NewRemoteSiteHandler(svc *remotesite.Service) *RemoteSiteHandler {
	return &RemoteSiteHandler{sites: svc}
}

type remoteSiteReq struct {
	Lat     *float64 `json:"lat" binding:"required_without=Address"`
	Lng     *float64 `json:"lng" binding:"required_with=Lat"`
	Address string   `json:"address"`
}

// Fee answers 200 for unserviceable sites too; callers branch on
// is_serviceable.
func (h *RemoteSiteHandler) Fee(c *gin.Context) {
	var req remoteSiteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	var (
		res remotesite.Result
		err error
	)
	if req.Lat != nil {
		res, err = h.sites.Calculate(c.Request.Context(), *req.Lat, *req.Lng)
	} else {
		res, err = h.sites.CalculateForAddress(c.Request.Context(), req.Address)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
