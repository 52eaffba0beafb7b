package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	xatyerrors "xaty/errors"
	"xaty/moderation"
)

// writeError maps a domain error onto the JSON contract consumed by the
// chat widget. Handled business outcomes (inactive event, denied delete,
// rejected content) are served as 200 with success=false, matching what the
// polling client expects; only transport-level failures change the status.
func writeError(c *gin.Context, err error) {
	var rejection *moderation.RejectionError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		fields := gin.H{}
		for _, fe := range fieldErrs {
			field := fe.Field()
			msgs, _ := fields[field].([]string)
			fields[field] = append(msgs, fe.Tag())
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fields})
	case errors.As(err, &rejection):
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"errors":  gin.H{"message": []string{rejection.UserMessage()}},
		})
	case errors.Is(err, xatyerrors.ErrEventNotActive):
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Event no actiu"})
	case errors.Is(err, xatyerrors.ErrForbidden):
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Sense permisos"})
	case errors.Is(err, xatyerrors.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event no trobat"})
	case errors.Is(err, xatyerrors.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Missatge no trobat"})
	case errors.Is(err, xatyerrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Cal iniciar sessió"})
	case errors.Is(err, xatyerrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Credencials incorrectes"})
	case errors.Is(err, xatyerrors.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Usuari ja existent"})
	case errors.Is(err, xatyerrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Estat desconegut"})
	case errors.Is(err, xatyerrors.ErrInvalidPassword),
		errors.Is(err, xatyerrors.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error intern"})
	}
}
