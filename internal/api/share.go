package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/spellhub/internal/team"
)

// decodeParam decodes the team query parameter or writes the error response.
func decodeParam(c *gin.Context) (team.TeamIdentity, bool) {
	token := c.Query(team.QueryParam)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing team parameter"})
		return team.TeamIdentity{}, false
	}
	t, err := team.DecodeTeam(token)
	if err != nil {
		status, code := decodeFailure(err)
		c.JSON(status, gin.H{"error": code, "message": "this link appears to be invalid"})
		return team.TeamIdentity{}, false
	}
	return t, true
}

func decodeFailure(err error) (int, string) {
	if errors.Is(err, team.ErrLegacyOrInvalid) {
		return http.StatusGone, "legacy_or_invalid"
	}
	return http.StatusUnprocessableEntity, "corrupt_payload"
}
