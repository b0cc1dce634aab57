package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hams-server/internal/ledger"
	"hams-server/internal/middleware"
	"hams-server/internal/models"
	"hams-server/internal/utils"
)

var kindStatus = map[ledger.Kind]int{
	ledger.KindMissingField:     http.StatusBadRequest,
	ledger.KindInvalidInterval:  http.StatusBadRequest,
	ledger.KindInvalidReference: http.StatusUnprocessableEntity,
	ledger.KindNotFound:         http.StatusNotFound,
	ledger.KindForbidden:        http.StatusForbidden,
	ledger.KindSlotConflict:     http.StatusConflict,
}

// respondError writes a ledger failure with its kind, anything else as a 500.
func respondError(c *gin.Context, err error) {
	var le *ledger.Error
	if errors.As(err, &le) {
		status, ok := kindStatus[le.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		utils.Failure(c, status, string(le.Kind), le.Message)
		return
	}
	utils.InternalServerError(c, err.Error())
}

// requireActor fetches the session identity or answers 401.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
	}
	return actor, ok
}

var errInvalidCredentials = errors.New("invalid email or password")
