package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "agritradehub/internal/transport/http/middleware"
	resp "agritradehub/internal/transport/http/response"
	"agritradehub/internal/tts"
)

type TTSHandler struct {
	client *tts.Client
	auth   mdw.Authenticator
	log    *zap.Logger
}

func NewTTSHandler(client *tts.Client, auth mdw.Authenticator, log *zap.Logger) *TTSHandler {
	return &TTSHandler{client: client, auth: auth, log: log}
}

func (h *TTSHandler) MountAPI(g *gin.RouterGroup) {
	if !h.client.Enabled() {
		return
	}
	g.POST("/tts", mdw.RequireAuth(h.auth), h.synthesize)
}

type ttsIn struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (h *TTSHandler) synthesize(c *gin.Context) {
	var in ttsIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FromBindError(c, err)
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		resp.Fail(c, http.StatusBadRequest, resp.MsgValidation)
		return
	}
	if in.Lang == "" {
		in.Lang = "en"
	}
	audio, err := h.client.Synthesize(c.Request.Context(), in.Text, in.Lang)
	if err != nil {
		h.log.Warn("tts upstream failed", zap.Error(err))
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioContent": audio})
}
